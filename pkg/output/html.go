package output

import (
	"html/template"
	"io"
	"strings"
)

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"lower": strings.ToLower,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Deployment check: {{.Root}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; vertical-align: top; }
.pass { color: #1a7f37; }
.warn { color: #9a6700; }
.fail { color: #cf222e; }
ul { margin: 0; padding-left: 1.2em; }
</style>
</head>
<body>
<h1>Deployment check</h1>
<p>Root: <code>{{.Root}}</code><br>Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
<table>
<tr><th>Status</th><th>Check</th><th>Message</th><th>Details</th></tr>
{{- range .Results}}
<tr class="{{lower .Status}}">
<td>{{.Status}}</td>
<td>{{.Name}}</td>
<td>{{.Message}}</td>
<td>{{if .Details}}<ul>{{range .Details}}<li>{{.}}</li>{{end}}</ul>{{end}}</td>
</tr>
{{- end}}
</table>
<h2>Summary</h2>
<p id="summary">{{.Summary.Pass}} passed, {{.Summary.Warn}} warnings, {{.Summary.Fail}} failed, {{.Summary.Total}} total</p>
</body>
</html>
`))

// HTML writes r as a standalone page.
func HTML(w io.Writer, r Report) error {
	return page.Execute(w, r)
}
