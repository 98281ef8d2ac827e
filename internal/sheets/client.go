// Package sheets reads the clinic's Google Sheets workbooks.
package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/config"
)

// ValuesGetter fetches the cell values of an A1 range.
type ValuesGetter interface {
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

// GoogleClient is a read-only Sheets API client. Calls are paced so that
// bursts of cache misses do not trip the API quota.
type GoogleClient struct {
	srv     *sheets.Service
	limiter *rate.Limiter
}

// NewGoogleClient authenticates with either base64-encoded service account
// JSON or a service account email and private key.
func NewGoogleClient(ctx context.Context, cfg config.Sheets) (*GoogleClient, error) {
	if missing := cfg.MissingSheetsVars(); len(missing) > 0 {
		return nil, &apperr.MissingConfig{Vars: missing}
	}

	var opt option.ClientOption
	if cfg.CredentialsBase64 != "" {
		credBytes, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, credBytes, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials JSON: %w", err)
		}
		opt = option.WithCredentials(creds)
	} else {
		conf := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(strings.ReplaceAll(cfg.ServiceAccountPrivateKey, `\n`, "\n")),
			Scopes:     []string{sheets.SpreadsheetsReadonlyScope},
			TokenURL:   google.JWTTokenURL,
		}
		opt = option.WithTokenSource(conf.TokenSource(context.WithoutCancel(ctx)))
	}

	srv, err := sheets.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	return &GoogleClient{srv: srv, limiter: newLimiter(cfg.PauseMs)}, nil
}

func newLimiter(pauseMs int) *rate.Limiter {
	if pauseMs <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Duration(pauseMs)*time.Millisecond), 1)
}

func (c *GoogleClient) Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get sheet values %q: %w", readRange, err)
	}
	return resp.Values, nil
}

// Unavailable is a ValuesGetter for deployments without Sheets credentials.
// Every call reports the missing variables.
type Unavailable []string

func (u Unavailable) Values(context.Context, string, string) ([][]any, error) {
	return nil, &apperr.MissingConfig{Vars: u}
}
