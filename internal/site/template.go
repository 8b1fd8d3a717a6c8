package site

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// TemplateFile is looked up in the source directory and, when present,
// replaces DefaultTemplate.
const TemplateFile = "template.html"

// DefaultTemplate is the page layout used for every generated page. The
// placeholders {{.Title}}, {{.Version}}, {{.ModuleIndex}} and {{.Content}}
// are replaced when a page is written. Links are relative to the site root.
const DefaultTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" media="all" href="static/base.css">
</head>
<body>
  <div id="version">{{.Version}}</div>
  <ul class="module-index">{{.ModuleIndex}}
  </ul>
  <div id="main-content">
{{.Content}}
  </div>
</body>
</html>
`

var heading = regexp.MustCompile(`(?s)<h1[^>]*>(.*?)</h1>`)
var tags = regexp.MustCompile(`<[^>]*>`)

// page fills a template for one site.
type page struct {
	template    string
	siteTitle   string
	version     string
	moduleIndex string
}

func loadTemplate(source string) (string, error) {
	b, err := os.ReadFile(filepath.Join(source, TemplateFile))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultTemplate, nil
	}
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(b), nil
}

func (p *page) render(content string) string {
	replacer := strings.NewReplacer(
		"{{.Title}}", html.EscapeString(pageTitle(content, p.siteTitle)),
		"{{.Version}}", html.EscapeString(p.version),
		"{{.ModuleIndex}}", p.moduleIndex,
		"{{.Content}}", content,
	)
	return replacer.Replace(p.template)
}

// pageTitle is "<first h1 text> - <site title>", or the site title alone
// when content has no h1.
func pageTitle(content, siteTitle string) string {
	m := heading.FindStringSubmatch(content)
	if m == nil {
		return siteTitle
	}
	h1 := strings.TrimSpace(html.UnescapeString(tags.ReplaceAllString(m[1], "")))
	if h1 == "" {
		return siteTitle
	}
	return h1 + " - " + siteTitle
}

// moduleIndex renders one list item per module page. Hrefs are relative to
// the site root.
func moduleIndex(modules []string) string {
	var b strings.Builder
	for _, rel := range modules {
		name := strings.TrimSuffix(rel, ".md")
		fmt.Fprintf(&b, "\n<li><a href=\"%s\">%s</a></li>",
			html.EscapeString(pageHref(name)), html.EscapeString(name))
	}
	return b.String()
}

// pageHref is the site-relative URL of the page for module name, with every
// path segment escaped.
func pageHref(name string) string {
	segs := strings.Split(name, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return modulesDir + "/" + strings.Join(segs, "/") + ".html"
}
