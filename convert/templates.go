package convert

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"themec/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	Name    string
	Origin  string
	Format  string
	RunID   string
	Date    string
}

func newValues(name, origin, format, runID string, now time.Time) Values {
	return Values{
		Name:   name,
		Origin: origin,
		Format: format,
		RunID:  runID,
		Date:   now.Format("2006-01-02"),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
