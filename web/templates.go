// Package web renders the dock yard dashboard and schedule as HTML pages.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"math"
	"time"

	"github.com/kilianp07/dockyard/core/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"duration":   model.FormatDuration,
		"seconds":    func(f float64) string { return model.FormatDuration(int64(math.Round(f))) },
		"localTime":  func(t time.Time, loc *time.Location) string { return model.FormatLocal(t, loc) },
		"clock":      func(t time.Time, loc *time.Location) string { return t.In(orLocal(loc)).Format("15:04") },
		"px":         func(minutes, scale float64) float64 { return minutes * scale },
		"poolLabel":  func(p model.Pool) string { return p.Label() },
		"statusName": func(s model.Status) string { return s.Label() },
	}

	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(subFS, "*.html")
	if err != nil {
		return nil, err
	}

	return tmpl, nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
