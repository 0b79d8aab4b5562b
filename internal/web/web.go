// Package web serves the single-page upload and gallery UI.
package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var content embed.FS

var indexTmpl = template.Must(template.ParseFS(content, "index.html"))

// Index renders the upload and gallery page.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTmpl.Execute(w, nil)
}
