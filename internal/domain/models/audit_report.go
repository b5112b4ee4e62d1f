package models

import (
	"encoding/json"
	"fmt"
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// MetaTagMap maps a meta tag's name, property or http-equiv value to its content.
type MetaTagMap map[string]string

type Mismatch struct {
	URL      string `json:"url"`
	Field    Field  `json:"field"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
}

func (m Mismatch) Message() string {
	return fmt.Sprintf(`URL: %s. Meta %s "%s" does not match required %s: %s`, m.URL, m.Field, m.Actual, m.Field, m.Expected)
}

// RowError records a row that could not be audited.
type RowError struct {
	URL  string `json:"url"`
	Line int    `json:"line"`
	Err  error  `json:"-"`
}

func (e RowError) Message() string {
	return fmt.Sprintf(`URL: %s (line %d). Audit failed: %v`, e.URL, e.Line, e.Err)
}

func (e RowError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		URL   string `json:"url"`
		Line  int    `json:"line"`
		Error string `json:"error"`
	}{e.URL, e.Line, msg})
}

type AuditReport struct {
	RunID      string     `json:"run_id"`
	Rows       int        `json:"rows"`
	Mismatches []Mismatch `json:"mismatches"`
	RowErrors  []RowError `json:"row_errors"`
}

func (r *AuditReport) OK() bool {
	return len(r.Mismatches) == 0 && len(r.RowErrors) == 0
}
