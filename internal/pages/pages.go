package pages

import (
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"

	"github.com/opattison/figureimg/internal/figure"
	"github.com/opattison/figureimg/internal/markdown"
)

type Page struct {
	Slug        string         `yaml:"slug"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Images      []figure.Image `yaml:"image"`
	Content     template.HTML  `yaml:"-"`
}

type Service struct {
	md    *markdown.Service
	pages []Page
}

func (s *Service) Start() error {
	if err := s.md.Load(); err != nil {
		return fmt.Errorf("error loading pages markdown: %w", err)
	}

	for path, document := range s.md.Data {
		var page Page

		if document.Frontmatter != nil {
			if err := document.Frontmatter.Decode(&page); err != nil {
				return fmt.Errorf("error unmarshaling page frontmatter: %w", err)
			}
		}

		if page.Slug == "" {
			page.Slug = strings.TrimSuffix(path, ".md")
		}

		page.Content = template.HTML(document.Content) //nolint:gosec

		s.pages = append(s.pages, page)
	}

	sort.Slice(s.pages, func(i, j int) bool {
		return s.pages[i].Slug < s.pages[j].Slug
	})

	return nil
}

type PageNotFoundError struct {
	Slug string
}

func (e PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.Slug)
}

func (s *Service) Get(slug string) (Page, error) {
	for _, page := range s.pages {
		if page.Slug == slug {
			return page, nil
		}
	}

	return Page{}, PageNotFoundError{Slug: slug}
}

// List returns all pages ordered by slug.
func (s *Service) List() []Page {
	pages := make([]Page, len(s.pages))
	copy(pages, s.pages)

	return pages
}

func New(content fs.FS, opts ...markdown.Option) *Service {
	md := markdown.New(content, opts...)

	return &Service{
		md:    md,
		pages: make([]Page, 0, len(md.Data)),
	}
}
