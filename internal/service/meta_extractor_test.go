package service

import (
	"errors"
	"testing"
	"seo_meta_audit/internal/domain/models"
	auditerrors "seo_meta_audit/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "well formed",
			html:     "<!DOCTYPE html><html><head><title>Example Title</title></head><body></body></html>",
			expected: "Example Title",
		},
		{
			name:     "no title",
			html:     "<html><head></head><body><h1>Title</h1></body></html>",
			expected: "",
		},
		{
			name:     "whitespace is kept",
			html:     "<title>  Padded \n</title>",
			expected: "  Padded \n",
		},
		{
			name:     "first title wins",
			html:     "<head><title>First</title><title>Second</title></head>",
			expected: "First",
		},
		{
			name:     "entities are decoded",
			html:     "<title>Fish &amp; Chips</title>",
			expected: "Fish & Chips",
		},
		{
			name:     "unclosed tags and no doctype",
			html:     "<html><head><title>Broken</title><body><div><p>text",
			expected: "Broken",
		},
		{
			name:     "markup is not interpreted inside title",
			html:     "<title>A <b>bold</b> title</title>",
			expected: "A <b>bold</b> title",
		},
		{
			name:     "empty page",
			html:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, err := ExtractTitle([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, title)
		})
	}
}

func TestExtractMetaTags(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected models.MetaTagMap
	}{
		{
			name:     "double quoted",
			html:     `<meta name="description" content="Example Description">`,
			expected: models.MetaTagMap{"description": "Example Description"},
		},
		{
			name:     "content before name",
			html:     `<meta content="Y" name="description">`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "single quoted",
			html:     `<meta name='description' content='Y'>`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "unquoted",
			html:     `<meta name=description content=Y>`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "unquoted self closing",
			html:     `<meta name=description content=Y/><meta name=robots content=noindex />`,
			expected: models.MetaTagMap{"description": "Y", "robots": "noindex"},
		},
		{
			name:     "unquoted value with spaces",
			html:     `<meta name=description content=Hello world>`,
			expected: models.MetaTagMap{"description": "Hello world"},
		},
		{
			name:     "unquoted key with spaces",
			html:     `<meta name=og title content=X>`,
			expected: models.MetaTagMap{"og title": "X"},
		},
		{
			name:     "unquoted value before spaced self close",
			html:     `<meta name=description content=Hello world / >`,
			expected: models.MetaTagMap{"description": "Hello world"},
		},
		{
			name:     "unclosed quote does not hide later tags",
			html:     `<meta name="a content=b> <meta name=description content=Y>`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "only ascii whitespace is trimmed",
			html:     "<meta name=\"description\" content=\" \u00a0Y\u00a0\t\">",
			expected: models.MetaTagMap{"description": "\u00a0Y\u00a0"},
		},
		{
			name:     "quoted values are trimmed",
			html:     `<meta name=" description " content="  Y  ">`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "tag and attribute names ignore case",
			html:     `<META NAME="description" CONTENT="Y">`,
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name:     "whitespace around tag name and equals",
			html:     "< meta\n\tname = \"description\"\n content= 'Y' >",
			expected: models.MetaTagMap{"description": "Y"},
		},
		{
			name: "property and http-equiv",
			html: `<meta property="og:title" content="OG"><meta http-equiv="refresh" content="5">` +
				`<meta charset="utf-8"><meta name="viewport">`,
			expected: models.MetaTagMap{"og:title": "OG", "refresh": "5"},
		},
		{
			name:     "later duplicate wins",
			html:     `<meta name="description" content="first"><meta name="description" content="second">`,
			expected: models.MetaTagMap{"description": "second"},
		},
		{
			name:     "keys keep their case",
			html:     `<meta name="Description" content="Y">`,
			expected: models.MetaTagMap{"Description": "Y"},
		},
		{
			name:     "extra attributes",
			html:     `<meta data-x="1" itemprop name="keywords" lang=en content="a, b" id='k'>`,
			expected: models.MetaTagMap{"keywords": "a, b"},
		},
		{
			name:     "metadata is not meta",
			html:     `<metadata name="description" content="Y">`,
			expected: models.MetaTagMap{},
		},
		{
			name:     "unterminated tag",
			html:     `<meta name="description" content="Y"`,
			expected: models.MetaTagMap{},
		},
		{
			name:     "nothing matches",
			html:     `<html><head><title>T</title></head></html>`,
			expected: models.MetaTagMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMetaTags([]byte(tt.html)))
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "present",
			html:     `<head><meta name="description" content="Example Description"></head>`,
			expected: "Example Description",
		},
		{
			name:     "lookup is case sensitive",
			html:     `<meta NAME="Description" content="Y">`,
			expected: "",
		},
		{
			name:     "absent",
			html:     `<meta name="keywords" content="Y">`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description, err := ExtractDescription([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, description)
		})
	}
}

func TestExtract_NilInput(t *testing.T) {
	_, err := ExtractTitle(nil)
	assert.True(t, errors.Is(err, auditerrors.ErrInvalidInput), "got %v", err)

	_, err = ExtractDescription(nil)
	assert.True(t, errors.Is(err, auditerrors.ErrInvalidInput), "got %v", err)
}

func TestExtract_Idempotent(t *testing.T) {
	page := []byte(`<title>Same</title><meta name="description" content="Same">`)

	firstTitle, _ := ExtractTitle(page)
	secondTitle, _ := ExtractTitle(page)
	assert.Equal(t, firstTitle, secondTitle)

	assert.Equal(t, ExtractMetaTags(page), ExtractMetaTags(page))
	assert.Equal(t, `<title>Same</title><meta name="description" content="Same">`, string(page))
}
