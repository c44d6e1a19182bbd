// Package figure implements the figure_img tag, which renders an image from
// page front matter as a <figure> element.
package figure

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/opattison/figureimg/internal/tags"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Name is the tag name figure_img is registered under.
const Name = "figure_img"

// DefaultBaseURLKey is the site key holding the image host.
const DefaultBaseURLKey = "image_url"

// An Image is a single entry of a page's image list.
type Image struct {
	URL     string `yaml:"url"     mapstructure:"url"`
	Alt     string `yaml:"alt"     mapstructure:"alt"`
	Caption string `yaml:"caption" mapstructure:"caption"`
}

// A Tag renders one figure_img invocation.
type Tag struct {
	directive  Directive
	baseURLKey string
	md         goldmark.Markdown
}

type Option func(*Tag)

// WithBaseURLKey sets the site key the base URL is read from.
func WithBaseURLKey(key string) Option {
	return func(t *Tag) {
		t.baseURLKey = key
	}
}

// WithMarkdown sets the converter used for captions.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(t *Tag) {
		t.md = md
	}
}

// NewMarkdown returns the caption converter used when none is configured.
func NewMarkdown() goldmark.Markdown { //nolint:ireturn
	return goldmark.New(
		goldmark.WithExtensions(
			extension.NewTypographer(),
			extension.NewLinkify(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// New parses markup and returns a Tag.
func New(markup string, opts ...Option) *Tag {
	t := &Tag{
		directive:  ParseDirective(markup),
		baseURLKey: DefaultBaseURLKey,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.md == nil {
		t.md = NewMarkdown()
	}

	return t
}

func (t *Tag) Directive() Directive {
	return t.directive
}

// Render resolves the directive against ctx and returns the figure markup.
func (t *Tag) Render(ctx tags.Context) (string, error) {
	prefix := "page.image." + strconv.Itoa(t.directive.Index) + "."

	src := JoinURL(ctx.String("site."+t.baseURLKey), ctx.String(prefix+"url"))
	alt := ctx.String(prefix + "alt")

	var caption *string

	if t.directive.Caption {
		var buf bytes.Buffer
		if err := t.md.Convert([]byte(ctx.String(prefix+"caption")), &buf); err != nil {
			return "", fmt.Errorf("error converting caption: %w", err)
		}

		c := strings.TrimSpace(buf.String())
		caption = &c
	}

	return Markup(t.directive.Classes, src, alt, caption), nil
}

// Register adds figure_img to r. The options apply to every Tag it builds.
func Register(r *tags.Registry, opts ...Option) error {
	if err := r.Register(Name, func(markup string) tags.Tag {
		return New(markup, opts...)
	}); err != nil {
		return fmt.Errorf("error registering %s: %w", Name, err)
	}

	return nil
}

// Markup composes the figure element. A nil caption omits the figcaption;
// caption HTML is written as-is.
func Markup(classes, src, alt string, caption *string) string {
	var b strings.Builder

	b.WriteString("<figure")

	if classes != "" {
		b.WriteString(` class="`)
		b.Write(util.EscapeHTML([]byte(classes)))
		b.WriteString(`"`)
	}

	b.WriteString(`><img src="`)

	if !html.IsDangerousURL([]byte(src)) {
		b.Write(util.EscapeHTML(util.URLEscape([]byte(src), false)))
	}

	b.WriteString(`" alt="`)
	b.Write(util.EscapeHTML([]byte(alt)))
	b.WriteString(`"/>`)

	if caption != nil {
		b.WriteString("<figcaption>")
		b.WriteString(*caption)
		b.WriteString("</figcaption>")
	}

	b.WriteString("</figure>")

	return b.String()
}

// JoinURL joins base and path with exactly one slash.
func JoinURL(base, path string) string {
	switch {
	case base == "":
		return path
	case path == "":
		return base
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
