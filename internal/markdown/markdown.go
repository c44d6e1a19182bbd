// Package markdown provides a general service for loading Markdown documents
// from an fs.FS, expanding template tags against their front matter.
package markdown

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/opattison/figureimg/internal/figure"
	"github.com/opattison/figureimg/internal/tags"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/frontmatter"
)

// A Document represents a Markdown document's content and frontmatter.
type Document struct {
	Frontmatter *frontmatter.Data
	Meta        map[string]any
	Content     string
}

// A service provides access to Markdown documents.
type Service struct {
	fs         fs.FS
	tags       *tags.Registry
	site       map[string]any
	baseURLKey string
	Data       map[string]Document
}

type Option func(*Service)

// WithTags sets the registry used to expand `{% ... %}` invocations.
func WithTags(r *tags.Registry) Option {
	return func(s *Service) {
		s.tags = r
	}
}

// WithSite sets the site data exposed to tags as `site`.
func WithSite(site map[string]any) Option {
	return func(s *Service) {
		s.site = site
	}
}

// WithBaseURLKey sets the site key holding the image host.
func WithBaseURLKey(key string) Option {
	return func(s *Service) {
		s.baseURLKey = key
	}
}

// New creates a new Markdown service for the given fs.FS.
func New(content fs.FS, opts ...Option) *Service {
	s := &Service{
		fs:         content,
		tags:       tags.NewRegistry(),
		site:       map[string]any{},
		baseURLKey: figure.DefaultBaseURLKey,
		Data:       make(map[string]Document),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DocumentNotFoundError is returned when a document is not found.
type DocumentNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// Get returns the document at the given path.
//
// If no document is found, a DocumentNotFoundError is returned.
func (s *Service) Get(path string) (Document, error) {
	doc, ok := s.Data[path]
	if !ok {
		return Document{}, DocumentNotFoundError{Path: path}
	}

	return doc, nil
}

func (s *Service) newMarkdown() goldmark.Markdown { //nolint:ireturn
	baseURL := tags.Context{Site: s.site}.String("site." + s.baseURLKey)

	return goldmark.New(
		goldmark.WithExtensions(
			extension.NewFootnote(),
			extension.NewTypographer(),
			extension.NewLinkify(),
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&figureRenderer{baseURL: baseURL}, 200),
			),
		),
	)
}

// Load reads and renders every *.md file at the root of the service's fs.FS.
func (s *Service) Load() error {
	gm := s.newMarkdown()

	m, err := fs.Glob(s.fs, "*.md")
	if err != nil {
		return fmt.Errorf("error globbing markdown files: %w", err)
	}

	for _, path := range m {
		b, err := fs.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("error reading markdown file: %w", err)
		}

		doc, err := s.render(gm, b)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", path, err)
		}

		s.Data[path] = doc
	}

	return nil
}

func (s *Service) render(gm goldmark.Markdown, b []byte) (Document, error) {
	pctx := parser.NewContext()
	gm.Parser().Parse(text.NewReader(b), parser.WithContext(pctx))

	fm := frontmatter.Get(pctx)

	meta := map[string]any{}

	if fm != nil {
		if err := fm.Decode(&meta); err != nil {
			return Document{}, fmt.Errorf("error decoding frontmatter: %w", err)
		}
	}

	expanded, err := s.tags.Expand(b, tags.Context{Page: meta, Site: s.site})
	if err != nil {
		return Document{}, fmt.Errorf("error expanding tags: %w", err)
	}

	var buf bytes.Buffer
	if err := gm.Convert(expanded, &buf, parser.WithContext(parser.NewContext())); err != nil {
		return Document{}, fmt.Errorf("error converting markdown: %w", err)
	}

	return Document{
		Frontmatter: fm,
		Meta:        meta,
		Content:     buf.String(),
	}, nil
}
