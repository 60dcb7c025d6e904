// Package renderer renders grids and company reports as Markdown, and
// converts that Markdown for the terminal or to HTML.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates is the root of the embedded templates.
var templates, _ = fs.Sub(templateFS, "templates")

// GridMarkdown renders a grid view as a Markdown table under an optional title.
func GridMarkdown(v *GridView) string {
	partials := map[string]string{
		"grid_table": "grid_table.md",
	}
	return renderTemplate("grid", "grid.md", partials, v)
}

// ReportMarkdown renders a company report: header, price table and dividend table.
func ReportMarkdown(v *ReportView) string {
	partials := map[string]string{
		"report_header":    "report_header.md",
		"report_prices":    "report_prices.md",
		"report_dividends": "report_dividends.md",
		"grid_table":       "grid_table.md",
	}
	if v.Dividends == nil {
		// An empty file name results in an empty template.
		partials["report_dividends"] = ""
	}
	return renderTemplate("report", "report.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
