// Package linkrewrite makes site-relative links in generated pages work from
// the page's own directory.
package linkrewrite

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

var linkAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

// Rewrite prefixes every site-relative href and src attribute in doc with
// depth copies of "../". Absolute URLs, protocol-relative URLs, fragment-only
// links and empty values are left alone. Tokens without rewritten attributes
// are copied unchanged.
func Rewrite(doc string, depth int) (string, error) {
	if depth < 0 {
		return "", fmt.Errorf("negative depth %d", depth)
	}
	prefix := strings.Repeat("../", depth)

	var out bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("tokenize: %w", err)
			}
			return out.String(), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := append([]byte(nil), z.Raw()...)
			tok := z.Token()
			if rewriteAttrs(&tok, prefix) {
				out.WriteString(tok.String())
			} else {
				out.Write(raw)
			}
		default:
			out.Write(z.Raw())
		}
	}
}

func rewriteAttrs(tok *html.Token, prefix string) bool {
	changed := false
	for i, a := range tok.Attr {
		if a.Namespace != "" || !linkAttrs[a.Key] {
			continue
		}
		if v, ok := rewriteURL(a.Val, prefix); ok {
			tok.Attr[i].Val = v
			changed = true
		}
	}
	return changed
}

func rewriteURL(v, prefix string) (string, bool) {
	switch {
	case v == "", strings.HasPrefix(v, "#"), strings.HasPrefix(v, "//"):
		return "", false
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme != "" {
		return "", false
	}
	out := prefix + strings.TrimPrefix(v, "/")
	if out == v || out == "" {
		return "", false
	}
	return out, true
}

// Depth reports how many directories dest lies below root. A file directly
// in root has depth 0.
func Depth(root, dest string) (int, error) {
	rel, err := filepath.Rel(root, filepath.Dir(dest))
	if err != nil {
		return 0, err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return 0, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return 0, fmt.Errorf("%s is outside %s", dest, root)
	}
	return strings.Count(rel, "/") + 1, nil
}
