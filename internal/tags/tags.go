// Package tags provides a registry of named template tags and expands
// `{% name markup %}` invocations in page source.
package tags

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
)

// A Tag renders itself against a Context.
type Tag interface {
	Render(ctx Context) (string, error)
}

// A Factory builds a Tag from the markup that follows the tag name.
type Factory func(markup string) Tag

// A Registry maps tag names to factories. It is populated at startup and only
// read afterwards.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DuplicateTagError is returned when a tag name is registered twice.
type DuplicateTagError struct {
	Name string
}

func (e DuplicateTagError) Error() string {
	return fmt.Sprintf("tag already registered: %s", e.Name)
}

// UnknownTagError is returned when source invokes an unregistered tag.
type UnknownTagError struct {
	Name string
}

func (e UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag: %s", e.Name)
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if _, ok := r.factories[name]; ok {
		return DuplicateTagError{Name: name}
	}

	r.factories[name] = f

	return nil
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered tag names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var invocation = regexp.MustCompile(`\{%\s*([A-Za-z_][\w-]*)(?:\s+(.*?))?\s*%\}`)

// Expand replaces every tag invocation in src with its rendered output.
func (r *Registry) Expand(src []byte, ctx Context) ([]byte, error) {
	matches := invocation.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	var buf bytes.Buffer

	last := 0

	for _, m := range matches {
		name := string(src[m[2]:m[3]])

		var markup string
		if m[4] >= 0 {
			markup = string(src[m[4]:m[5]])
		}

		f, ok := r.factories[name]
		if !ok {
			return nil, UnknownTagError{Name: name}
		}

		out, err := f(markup).Render(ctx)
		if err != nil {
			return nil, fmt.Errorf("error rendering tag %s: %w", name, err)
		}

		buf.Write(src[last:m[0]])
		buf.WriteString(out)

		last = m[1]
	}

	buf.Write(src[last:])

	return buf.Bytes(), nil
}
