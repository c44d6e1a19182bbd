package view

import (
	"bytes"
	"embed"
	"fmt"
	html "html/template"
	"io"
)

//go:embed templates
var fs embed.FS

type Service struct {
	html *html.Template
}

type renderOpts struct {
	title       string
	description string
	noRoot      bool
}

type RenderOpt func(*renderOpts)

func WithTitle(title string) RenderOpt {
	return func(opts *renderOpts) {
		opts.title = title
	}
}

func WithDescription(description string) RenderOpt {
	return func(opts *renderOpts) {
		opts.description = description
	}
}

func WithNoRoot() RenderOpt {
	return func(opts *renderOpts) {
		opts.noRoot = true
	}
}

type renderedPage struct {
	Title       string
	Description string
	Content     html.HTML
}

func (s *Service) RenderHTML(w io.Writer, name string, data any, opts ...RenderOpt) error {
	ropts := &renderOpts{}
	for _, opt := range opts {
		opt(ropts)
	}

	var tbuf bytes.Buffer
	if err := s.html.ExecuteTemplate(&tbuf, name, data); err != nil {
		return fmt.Errorf("error executing template: %w", err)
	}

	if ropts.noRoot {
		if _, err := w.Write(tbuf.Bytes()); err != nil {
			return fmt.Errorf("error writing template: %w", err)
		}

		return nil
	}

	if err := s.html.ExecuteTemplate(w, "root", renderedPage{
		Title:       ropts.title,
		Description: ropts.description,
		Content:     html.HTML(tbuf.String()), //nolint:gosec
	}); err != nil {
		return fmt.Errorf("error executing template: %w", err)
	}

	return nil
}

func New() (*Service, error) {
	tmpl, err := html.ParseFS(fs, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing html templates: %w", err)
	}

	return &Service{html: tmpl}, nil
}
