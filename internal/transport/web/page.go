package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/page.html.tmpl
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/page.html.tmpl"))

type pageData struct {
	Word    string
	Meaning string
	Search  string
	Notice  string
	// Region is produced by render.WriteHTML, which escapes all text.
	Region         template.HTML
	FragmentHeader string
}

func renderPage(w io.Writer, d pageData) error {
	d.FragmentHeader = FragmentHeader
	return pageTmpl.Execute(w, d)
}
