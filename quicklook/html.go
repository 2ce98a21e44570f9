package quicklook

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/atkingtornado/ACT/dataset"
	"github.com/atkingtornado/ACT/internal/config"
)

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Datastream}} quicklook {{.Date}}</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 900px; color: #222; }
h1, h2, h3 { color: #1a3c5e; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; }
.plot-section { margin: 2em 0; }
.plot-section img { max-width: 100%; border: 1px solid #ddd; }
.footer { margin-top: 3em; font-size: 0.8em; color: #888; }
</style>
</head>
<body>
<div class="summary">{{.Summary}}</div>
{{range .Plots}}
<div class="plot-section">
<h2>{{.Field}}{{if .Units}} ({{.Units}}){{end}}</h2>
<img src="{{.PNGFile}}" alt="{{.Field}}">
{{if .HTMLFile}}<p><a href="{{.HTMLFile}}">Interactive chart</a></p>{{end}}
</div>
{{end}}
<div class="footer">Generated by actplot {{.Version}}</div>
</body>
</html>
`

type indexPageData struct {
	Datastream string
	Date       string
	Summary    template.HTML
	Plots      []indexEntry
	Version    string
}

// newMarkdown configures the markdown converter used for summaries.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
		),
	)
}

// buildIndexHTML assembles the bundle index page from the markdown summary
// and the per-field plot entries.
func buildIndexHTML(ds *dataset.Dataset, entries []indexEntry, markdown string) (string, error) {
	var summary bytes.Buffer
	if err := newMarkdown().Convert([]byte(markdown), &summary); err != nil {
		return "", fmt.Errorf("failed to convert summary markdown: %w", err)
	}

	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse index template: %w", err)
	}

	data := indexPageData{
		Datastream: ds.Datastream(),
		Date:       coverageDate(ds),
		Summary:    template.HTML(summary.String()),
		Plots:      entries,
		Version:    config.GetVersion(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute index template: %w", err)
	}
	return buf.String(), nil
}
