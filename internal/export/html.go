package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// pageTemplate wraps the rendered resume in a printable A4 page.
var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>Aligned Resume</title>
<style>
@page { size: A4; margin: 18mm; }
body { font-family: "Helvetica Neue", Arial, "PingFang SC", sans-serif; font-size: 11pt; line-height: 1.5; color: #1a1a1a; max-width: 174mm; margin: 0 auto; }
h1 { font-size: 18pt; margin: 0 0 4pt; }
h2 { font-size: 13pt; margin: 14pt 0 4pt; border-bottom: 1px solid #ccc; padding-bottom: 2pt; }
ul { margin: 2pt 0; padding-left: 16pt; }
li { margin: 2pt 0; }
p { margin: 4pt 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML renders a markdown resume body as a standalone printable page.
func HTML(body, lang string) (string, error) {
	var rendered bytes.Buffer
	if err := markdown.Convert([]byte(body), &rendered); err != nil {
		return "", fmt.Errorf("export: markdown conversion failed: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Lang string
		Body template.HTML
	}{Lang: lang, Body: template.HTML(rendered.String())})
	if err != nil {
		return "", fmt.Errorf("export: page rendering failed: %w", err)
	}
	return page.String(), nil
}
