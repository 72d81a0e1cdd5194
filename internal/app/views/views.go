// Package views holds the HTML templates served by the student view controller.
package views

import (
	"embed"
	"html/template"
	"net/url"
)

// Template names
const (
	IndexTemplate  = "index.html"
	CreateTemplate = "create_estudiante.html"
	UpdateTemplate = "update_estudiante.html"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are available to every template. Control numbers placed in a URL path must go
// through pathEscape so '#', '?' and '/' stay part of the segment.
var Funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// Templates parses every embedded template. Pages are named after their file.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
