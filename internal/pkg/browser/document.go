package browser

import (
	"bytes"
	"html/template"
)

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.6; color: #24292f; margin: 2cm; }
h1, h2, h3 { border-bottom: 1px solid #d0d7de; padding-bottom: .3em; }
pre { background: #f6f8fa; padding: 12px; border-radius: 6px; overflow-x: auto; }
code { font-family: ui-monospace, Menlo, Consolas, monospace; font-size: 90%; }
blockquote { color: #57606a; border-left: .25em solid #d0d7de; margin: 0; padding: 0 1em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 6px 13px; }
img { max-width: 100%; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>`))

// DocumentPage 包装渲染后的 Markdown 片段，片段须已转义原始 HTML
func DocumentPage(title, bodyHTML string) (string, error) {
	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(bodyHTML)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
