package convert

import (
	"strings"
	"testing"
	"time"

	"themec/config"
)

func TestNewValues(t *testing.T) {
	v := newValues("ocean", "custom", "yaml", "1234", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC))

	if v.Name != "ocean" || v.Origin != "custom" || v.Format != "yaml" || v.RunID != "1234" {
		t.Errorf("unexpected values: %+v", v)
	}
	if v.Date != "2025-12-31" {
		t.Errorf("Date = %q, want 2025-12-31", v.Date)
	}
	if v.Context != "" {
		t.Errorf("Context = %q, must be set on expansion only", v.Context)
	}
}

func TestExpandTemplate(t *testing.T) {
	values := newValues("Ocean Breeze", "theme", "json", "abcd", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"name", "{{ .Name }}", "Ocean Breeze"},
		{"all fields", "{{ .Origin }}-{{ .Format }}-{{ .RunID }}-{{ .Date }}", "theme-json-abcd-2026-01-02"},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
		{"sprig lower", "{{ .Name | lower }}", "ocean breeze"},
		{"sprig default", `{{ "" | default "none" }}`, "none"},
		{"conditional", `{{ if eq .Origin "theme" }}main{{ else }}other{{ end }}`, "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(config.OutputNameTemplateFieldName, tt.template, values)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	values := newValues("ocean", "theme", "json", "", time.Now())

	_, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Name", values)
	if err == nil || !strings.Contains(err.Error(), string(config.OutputNameTemplateFieldName)) {
		t.Errorf("parse error = %v, want mention of field name", err)
	}

	if _, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Title }}", values); err == nil {
		t.Error("expected execution error for unknown field")
	}
}
