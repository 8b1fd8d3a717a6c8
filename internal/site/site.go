// Package site builds a static documentation site from a source tree of
// annotated module files and markdown guides.
//
// A source tree looks like
//
//	modules/   annotated .md files, one per module
//	guides/    plain markdown guides; guides/index.md becomes index.html
//	static/    copied verbatim
//	template.html (optional page layout)
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/apidoc/internal/apiparser"
	"github.com/example/apidoc/internal/config"
	"github.com/example/apidoc/internal/linkrewrite"
	"github.com/example/apidoc/internal/logging"
	"github.com/example/apidoc/internal/logging/logfields"
	"github.com/example/apidoc/internal/markdown"
	"github.com/example/apidoc/internal/renderer"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "site")

const (
	modulesDir = "modules"
	guidesDir  = "guides"
	staticDir  = "static"
	indexPage  = "index.html"
	guideIndex = "index.md"
)

// Builder generates a site as described by its configuration.
type Builder struct {
	Site     config.Site
	Markdown markdown.Converter
	Renderer *renderer.Renderer
	// Force rebuilds even when the source digest is unchanged.
	Force bool
}

// Result reports what a build did.
type Result struct {
	// UpToDate is set when nothing was rebuilt.
	UpToDate bool
	Digest   string
	Modules  []string
	Guides   []string
	// Skipped lists the module files that failed to parse under the skip
	// policy.
	Skipped []string
	Static  int
	Archive string
}

// New returns a builder for site using the configured markdown engine.
func New(site config.Site) (*Builder, error) {
	md, err := markdown.New(site.Markdown)
	if err != nil {
		return nil, err
	}
	return &Builder{
		Site:     site,
		Markdown: md,
		Renderer: renderer.New(md),
	}, nil
}

// Build regenerates the output directory unless it is already up to date.
// The context is checked between files.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	src, out := b.Site.Source, b.Site.Output
	if fi, err := os.Stat(src); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", src)
	}

	digest, err := Digest(src)
	if err != nil {
		return nil, err
	}
	res := &Result{Digest: digest}

	if !b.Force {
		prev, err := readDigest(out)
		if err != nil {
			return nil, fmt.Errorf("read digest: %w", err)
		}
		if prev == digest {
			log.WithField(logfields.Dest, out).Info("Documentation is up to date")
			res.UpToDate = true
			return res, nil
		}
	}

	log.WithField(logfields.Dest, out).Info("Generating documentation")
	if err := clean(out); err != nil {
		return nil, err
	}
	if res.Static, err = copyTree(filepath.Join(src, staticDir), filepath.Join(out, staticDir)); err != nil {
		return nil, fmt.Errorf("copy static files: %w", err)
	}

	tmpl, err := loadTemplate(src)
	if err != nil {
		return nil, err
	}
	modules, err := sourceFiles(filepath.Join(src, modulesDir))
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	p := &page{
		template:    tmpl,
		siteTitle:   b.Site.Title,
		version:     b.Site.Version,
		moduleIndex: moduleIndex(modules),
	}

	for _, rel := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := b.buildModule(p, rel)
		if err == nil {
			res.Modules = append(res.Modules, rel)
			continue
		}
		var perr *apiparser.ParseError
		if b.Site.OnError != config.OnErrorSkip || !errors.As(err, &perr) {
			return nil, err
		}
		log.WithError(perr.Err).
			WithField(logfields.File, rel).
			WithField(logfields.Line, perr.Line).
			Warn(perr.Detail)
		res.Skipped = append(res.Skipped, rel)
	}

	guides, err := sourceFiles(filepath.Join(src, guidesDir))
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	for _, rel := range guides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := filepath.Join(out, guidesDir, filepath.FromSlash(strings.TrimSuffix(rel, ".md")+".html"))
		if err := b.buildGuide(p, filepath.Join(src, guidesDir, filepath.FromSlash(rel)), dest); err != nil {
			return nil, err
		}
		res.Guides = append(res.Guides, rel)
	}

	if idx := filepath.Join(src, guidesDir, guideIndex); fileExists(idx) {
		if err := b.buildGuide(p, idx, filepath.Join(out, indexPage)); err != nil {
			return nil, err
		}
	}

	// Skipped files must be retried on the next run.
	if len(res.Skipped) == 0 {
		if err := writeDigest(out, digest); err != nil {
			return nil, fmt.Errorf("write digest: %w", err)
		}
	}

	if b.Site.Archive != "" {
		if err := writeArchive(out, b.Site.Archive); err != nil {
			return nil, err
		}
		res.Archive = b.Site.Archive
		log.WithField(logfields.Dest, b.Site.Archive).Info("Wrote archive")
	}

	log.WithField(logfields.Count, len(res.Modules)).
		WithField("guides", len(res.Guides)).
		WithField("skipped", len(res.Skipped)).
		Info("Documentation generated")
	return res, nil
}

func (b *Builder) buildModule(p *page, rel string) error {
	srcPath := filepath.Join(b.Site.Source, modulesDir, filepath.FromSlash(rel))
	name := strings.TrimSuffix(rel, ".md")
	base := filepath.Join(b.Site.Output, modulesDir, filepath.FromSlash(name))

	text, err := os.ReadFile(filepath.Clean(srcPath))
	if err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}
	m, err := apiparser.ParseModule(string(text))
	if err != nil {
		return fmt.Errorf("parse %s: %w", rel, err)
	}

	if b.Site.EmitJSON {
		data, err := m.JSON()
		if err != nil {
			return fmt.Errorf("encode %s: %w", rel, err)
		}
		if err := writeFile(base+".json", data); err != nil {
			return err
		}
	}

	div, err := b.Renderer.RenderModule(m, name)
	if err != nil {
		return fmt.Errorf("render %s: %w", rel, err)
	}
	log.WithField(logfields.Module, name).Debug("Rendered module")
	return b.writePage(p, div, base+".html")
}

func (b *Builder) buildGuide(p *page, srcPath, dest string) error {
	text, err := os.ReadFile(filepath.Clean(srcPath))
	if err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}
	content, err := b.Markdown.Convert(string(text))
	if err != nil {
		return fmt.Errorf("convert %s: %w", srcPath, err)
	}
	return b.writePage(p, content, dest)
}

func (b *Builder) writePage(p *page, content, dest string) error {
	depth, err := linkrewrite.Depth(b.Site.Output, dest)
	if err != nil {
		return err
	}
	doc, err := linkrewrite.Rewrite(p.render(content), depth)
	if err != nil {
		return fmt.Errorf("rewrite links in %s: %w", dest, err)
	}
	log.WithField(logfields.Dest, dest).Debug("Writing page")
	return writeFile(dest, []byte(doc))
}

// clean removes everything a previous build generated, leaving unrelated
// files in the output directory alone.
func clean(out string) error {
	for _, name := range []string{modulesDir, guidesDir, staticDir, indexPage, DigestFile} {
		if err := os.RemoveAll(filepath.Join(out, name)); err != nil {
			return fmt.Errorf("clean %s: %w", out, err)
		}
	}
	return os.MkdirAll(out, 0o755)
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
