package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the stored form of simulation dates. Fixed-width so that
// text comparison orders them.
const dateLayout = "2006-01-02T15:04:05.000000000Z"

func marshalDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func unmarshalDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal simulation date: %w", err)
	}
	return t, nil
}

// marshalMissing stores the missing summary fields as a JSON array, never
// null.
func marshalMissing(missing []string) (string, error) {
	if missing == nil {
		missing = []string{}
	}
	data, err := json.Marshal(missing)
	if err != nil {
		return "", fmt.Errorf("marshal missing: %w", err)
	}
	return string(data), nil
}

func unmarshalMissing(data string) ([]string, error) {
	missing := []string{}
	if data == "" {
		return missing, nil
	}
	if err := json.Unmarshal([]byte(data), &missing); err != nil {
		return nil, fmt.Errorf("unmarshal missing: %w", err)
	}
	return missing, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
