// Package markdown converts description text to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns markdown source into an HTML fragment. Implementations
// must return identical output for identical input.
type Converter interface {
	Convert(src string) (string, error)
}

// Default is the engine used when none is configured.
const Default = "goldmark"

var engines = map[string]func() Converter{
	"goldmark":    NewGoldmark,
	"blackfriday": NewBlackfriday,
}

// New returns the engine registered under name. An empty name selects
// Default.
func New(name string) (Converter, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown markdown engine %q (available: %v)", name, Engines())
	}
	return ctor(), nil
}

// Engines lists the registered engine names in sorted order.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type goldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmark returns a CommonMark converter with GitHub flavoured tables,
// strikethrough and autolinks. Raw HTML in the source is passed through.
func NewGoldmark() Converter {
	return &goldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (c *goldmarkConverter) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("goldmark: %w", err)
	}
	return buf.String(), nil
}

type blackfridayConverter struct{}

// NewBlackfriday returns a converter backed by blackfriday's common
// extensions.
func NewBlackfriday() Converter {
	return blackfridayConverter{}
}

func (blackfridayConverter) Convert(src string) (string, error) {
	return string(blackfriday.Run([]byte(src))), nil
}
