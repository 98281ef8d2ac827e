// Package masker logs configuration structs with secrets redacted.
package masker

import (
	"errors"
	"reflect"
	"time"

	"go.uber.org/zap"
)

var ErrConfigNotPointer = errors.New("masker: config must be a pointer to a struct")

// LogConfigs writes one log line per config. String fields tagged
// `masked:"true"` are redacted; nested structs are flattened into maps.
func LogConfigs(logger *zap.Logger, configs ...any) error {
	for _, cfg := range configs {
		v := reflect.ValueOf(cfg)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return ErrConfigNotPointer
		}
		v = v.Elem()

		logger.Info("config", zap.Any(v.Type().Name(), Fields(v)))
	}
	return nil
}

// Fields returns the exported fields of v with masked values redacted.
func Fields(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		field := v.Field(i)

		switch {
		case field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}):
			out[sf.Name] = Fields(field)
		case field.Kind() == reflect.String && sf.Tag.Get("masked") == "true":
			out[sf.Name] = Mask(field.String())
		case field.Type() == reflect.TypeOf(time.Duration(0)):
			out[sf.Name] = field.Interface().(time.Duration).String()
		default:
			out[sf.Name] = field.Interface()
		}
	}
	return out
}

// Mask keeps the first and last character. Empty values stay empty so an
// unset secret is visible as such.
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 2:
		return "****"
	}
	return s[:1] + "****" + s[len(s)-1:]
}
