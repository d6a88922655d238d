package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/san-kum/trace3d/internal/viz"
)

const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var htmlTmpl = template.Must(template.New("figure").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.CDN}}"></script>
<style>html, body, #figure { margin: 0; height: 100%; }</style>
</head>
<body>
<div id="figure"></div>
<script>
var fig = {{.Figure}};
Plotly.newPlot("figure", fig.data, fig.layout, {responsive: true});
</script>
</body>
</html>
`))

// FigureJSON renders the figure as an indented plotly JSON document.
func FigureJSON(fig *viz.Figure) ([]byte, error) {
	data, err := fig.JSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal figure: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return nil, err
	}
	return indented.Bytes(), nil
}

// FigureHTML renders a standalone interactive page embedding the figure
// and loading plotly.js from the CDN.
func FigureHTML(fig *viz.Figure) ([]byte, error) {
	data, err := fig.JSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal figure: %w", err)
	}

	title := fig.Layout.Title
	if title == "" {
		title = "trace3d figure"
	}

	var buf bytes.Buffer
	err = htmlTmpl.Execute(&buf, struct {
		Title  string
		CDN    string
		Figure template.JS
	}{Title: title, CDN: plotlyCDN, Figure: template.JS(data)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
