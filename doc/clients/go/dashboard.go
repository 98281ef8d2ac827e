// sample implementation, do not build or test
//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type CalendarEntry struct {
	ID                int     `json:"id"`
	Status            string  `json:"status"`
	CustomerName      string  `json:"customer_name"`
	InterestedProduct string  `json:"interested_product"`
	ProposedAmount    float64 `json:"proposed_amount"`
	ConsultDate       string  `json:"consult_date"`
	SurgeryDate       string  `json:"surgery_date"`
	DisplayDate       string  `json:"displayDate"`
}

type CalendarResponse struct {
	Success   bool            `json:"success"`
	Data      []CalendarEntry `json:"data"`
	Total     int             `json:"total"`
	Timestamp string          `json:"timestamp"`
	Error     string          `json:"error"`
}

var client = &http.Client{Timeout: 15 * time.Second}

// FetchCalendar lists leads with a consult or surgery date in one month.
// The X-Cache-Status header tells whether the answer came from the cache.
func FetchCalendar(baseURL string, month, year int) (*CalendarResponse, string, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))

	resp, err := client.Get(baseURL + "/api/crm-advanced?" + q.Encode())
	if err != nil {
		return nil, "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	var out CalendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	if !out.Success {
		return nil, "", fmt.Errorf("server error (%d): %s", resp.StatusCode, out.Error)
	}
	return &out, resp.Header.Get("X-Cache-Status"), nil
}

// UpdateLead changes fields on one lead row and returns the stored row.
func UpdateLead(baseURL string, id int, fields map[string]any) (map[string]any, error) {
	data := map[string]any{"id": id}
	for k, v := range fields {
		data[k] = v
	}
	body, err := json.Marshal(map[string]any{"action": "update", "data": data})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/api/customer-data", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Error   string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, out.Error)
	}
	return out.Data, nil
}

// FlushCaches drops every cached dashboard response. Requires the admin key.
func FlushCaches(baseURL, adminKey string) error {
	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/admin/cache", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", adminKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("flush failed: %s", resp.Status)
	}
	return nil
}

func main() {
	cal, status, err := FetchCalendar("http://localhost:8080", 11, 2025)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d events (cache %s)\n", cal.Total, status)
}
