package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	ttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const markdownTemplate = `# {{.Title}}
{{if .Subtitle}}
_{{cell .Subtitle}}_
{{end}}
{{range .Facts}}- **{{.Label}}:** {{cell .Value}}
{{end}}{{range .Tables}}
## {{.Title}}

{{row .Headers}}
{{rule .Headers}}
{{range .Rows}}{{row .}}
{{end}}{{end}}
Generated {{.Generated.Format "2006-01-02 15:04"}}
`

var mdTemplate = ttemplate.Must(ttemplate.New("markdown").Funcs(ttemplate.FuncMap{
	"cell": mdCell,
	"row": func(cells []string) string {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = mdCell(c)
		}
		return "| " + strings.Join(escaped, " | ") + " |"
	},
	"rule": func(headers []string) string {
		parts := make([]string, len(headers))
		for i := range headers {
			if i == 0 {
				parts[i] = "---"
			} else {
				parts[i] = "---:"
			}
		}
		return "| " + strings.Join(parts, " | ") + " |"
	},
}).Parse(markdownTemplate))

func mdCell(s string) string {
	r := strings.NewReplacer("|", `\|`, "_", `\_`, "*", `\*`, "\n", " ")
	return r.Replace(s)
}

func writeMarkdown(w io.Writer, doc Document) error {
	if err := mdTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; }
</style>
</head>
<body>
{{.Body}}</body>
</html>
`))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

func writeHTML(w io.Writer, doc Document) error {
	var src bytes.Buffer
	if err := writeMarkdown(&src, doc); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	return htmlPage.Execute(w, struct {
		Title string
		Body  template.HTML
	}{doc.Title, template.HTML(body.String())}) //nolint:gosec // goldmark escapes raw HTML by default
}
