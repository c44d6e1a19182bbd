package pages

import (
	"testing"
	"testing/fstest"

	"github.com/opattison/figureimg/internal/figure"
	"github.com/opattison/figureimg/internal/markdown"
	"github.com/opattison/figureimg/internal/tags"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	r := tags.NewRegistry()
	require.NoError(t, figure.Register(r))

	s := New(fstest.MapFS{
		"solar.md": {Data: []byte(`---
slug: solar-farm
title: Solar farm
description: A trip.
image:
  - url: solar-farm.jpg
    alt: Landscape view of solar farm
    caption: A photo.
---

{% figure_img 0 caption %}
`)},
		"about.md": {Data: []byte("About me.\n")},
	},
		markdown.WithTags(r),
		markdown.WithSite(map[string]any{"image_url": "http://images.example.com"}),
	)
	require.NoError(t, s.Start())

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "about", list[0].Slug)
	require.Equal(t, "solar-farm", list[1].Slug)

	page, err := s.Get("solar-farm")
	require.NoError(t, err)
	require.Equal(t, "Solar farm", page.Title)
	require.Equal(t, "A trip.", page.Description)
	require.Equal(t, []figure.Image{{
		URL:     "solar-farm.jpg",
		Alt:     "Landscape view of solar farm",
		Caption: "A photo.",
	}}, page.Images)
	require.Contains(t, string(page.Content),
		`<figure><img src="http://images.example.com/solar-farm.jpg" alt="Landscape view of solar farm"/><figcaption><p>A photo.</p></figcaption></figure>`)

	_, err = s.Get("missing")
	require.Equal(t, PageNotFoundError{Slug: "missing"}, err)
}
