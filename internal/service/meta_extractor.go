package service

import (
	"bytes"
	"strings"
	"seo_meta_audit/internal/domain/models"
	"seo_meta_audit/internal/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const descriptionKey = "description"

// ExtractTitle returns the text of the first title element, untrimmed. The
// parser recovers from any malformed markup, so a page without a title
// yields "".
func ExtractTitle(page []byte) (string, error) {
	if page == nil {
		return "", errors.Kind(errors.ErrInvalidInput, `the page content is nil. Check the site`)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", errors.Wrap(err, `failed to parse html`)
	}
	return doc.Find("title").First().Text(), nil
}

// ExtractDescription returns the content of the meta tag keyed exactly
// "description". Keys are not case folded.
func ExtractDescription(page []byte) (string, error) {
	if page == nil {
		return "", errors.Kind(errors.ErrInvalidInput, `the page content is nil. Check the site`)
	}
	return ExtractMetaTags(page)[descriptionKey], nil
}

// ExtractMetaTags scans raw markup for <meta> tags that carry both an
// identifying attribute (name, property or http-equiv) and a content
// attribute. Later tags overwrite earlier ones with the same key.
func ExtractMetaTags(page []byte) models.MetaTagMap {
	tags := models.MetaTagMap{}
	s := &metaScanner{src: page}
	for s.nextMeta() {
		opener := s.pos
		attrs, ok := s.attributes()
		if !ok {
			// unclosed quote or tag: drop this tag, resume after its opener
			s.pos = opener
			continue
		}
		key, hasKey := attrs.identifier()
		content, hasContent := attrs.get("content")
		if hasKey && hasContent {
			tags[key] = content
		}
	}
	return tags
}

type attribute struct {
	name  string
	value string
}

type attributeList []attribute

// get returns the first attribute named name, ignoring case.
func (l attributeList) get(name string) (string, bool) {
	for _, a := range l {
		if strings.EqualFold(a.name, name) {
			return a.value, true
		}
	}
	return "", false
}

// identifier returns the value of the leftmost name, property or
// http-equiv attribute.
func (l attributeList) identifier() (string, bool) {
	for _, a := range l {
		switch strings.ToLower(a.name) {
		case "name", "property", "http-equiv":
			return a.value, true
		}
	}
	return "", false
}

// metaScanner walks raw markup. It is not an HTML tokenizer: comments,
// scripts and CDATA are scanned like any other text.
type metaScanner struct {
	src []byte
	pos int
}

// nextMeta advances past the next "<meta" opener, which may have
// whitespace after "<" and must be followed by whitespace.
func (s *metaScanner) nextMeta() bool {
	for {
		i := bytes.IndexByte(s.src[s.pos:], '<')
		if i < 0 {
			s.pos = len(s.src)
			return false
		}
		s.pos += i + 1
		p := s.pos
		for p < len(s.src) && isSpace(s.src[p]) {
			p++
		}
		if p+5 <= len(s.src) && bytes.EqualFold(s.src[p:p+4], []byte("meta")) && isSpace(s.src[p+4]) {
			s.pos = p + 5
			return true
		}
	}
}

// attributes reads attributes up to the closing '>'. It reports false when
// the input ends before the tag is closed.
func (s *metaScanner) attributes() (attributeList, bool) {
	var attrs attributeList
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, false
		}
		switch s.src[s.pos] {
		case '>':
			s.pos++
			return attrs, true
		case '/':
			s.pos++
			continue
		}

		name := s.readName()
		s.skipSpace()
		if s.pos >= len(s.src) || s.src[s.pos] != '=' {
			attrs = append(attrs, attribute{name: name})
			continue
		}
		s.pos++
		s.skipSpace()
		value, ok := s.readValue()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, attribute{name: name, value: value})
	}
}

func (s *metaScanner) readName() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isSpace(c) || c == '=' || c == '>' || c == '/' {
			break
		}
		s.pos++
	}
	if s.pos == start {
		// a lone '=' or quote; consume it so the scan always advances
		s.pos++
		return string(s.src[start:s.pos])
	}
	return string(s.src[start:s.pos])
}

// readValue reads a double quoted, single quoted or bare value. Quoted
// values are trimmed of ASCII whitespace. A bare value runs up to '>', or up
// to whitespace that is followed by the end of the tag or by another
// attribute assignment; a '/' right before the end of the tag is not part
// of it.
func (s *metaScanner) readValue() (string, bool) {
	if s.pos >= len(s.src) {
		return "", false
	}
	if q := s.src[s.pos]; q == '"' || q == '\'' {
		end := bytes.IndexByte(s.src[s.pos+1:], q)
		if end < 0 {
			return "", false
		}
		value := s.src[s.pos+1 : s.pos+1+end]
		s.pos += end + 2
		return strings.Trim(string(value), asciiSpace), true
	}

	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '>' {
		if isSpace(s.src[s.pos]) && s.valueEndsAt(s.pos) {
			break
		}
		s.pos++
	}
	value := s.src[start:s.pos]
	if bytes.HasSuffix(value, []byte("/")) && s.closesAfterSpace() {
		value = value[:len(value)-1]
	}
	return string(value), true
}

// valueEndsAt reports whether the whitespace at p closes a bare value: what
// follows is the end of the input, '>', "/>" or "name =".
func (s *metaScanner) valueEndsAt(p int) bool {
	for p < len(s.src) && isSpace(s.src[p]) {
		p++
	}
	if p >= len(s.src) || s.src[p] == '>' {
		return true
	}
	if s.src[p] == '/' {
		p++
		for p < len(s.src) && isSpace(s.src[p]) {
			p++
		}
		return p < len(s.src) && s.src[p] == '>'
	}

	nameStart := p
	for p < len(s.src) && isNameByte(s.src[p]) {
		p++
	}
	if p == nameStart {
		return false
	}
	for p < len(s.src) && isSpace(s.src[p]) {
		p++
	}
	return p < len(s.src) && s.src[p] == '='
}

// closesAfterSpace reports whether only whitespace separates the current
// position from '>'.
func (s *metaScanner) closesAfterSpace() bool {
	p := s.pos
	for p < len(s.src) && isSpace(s.src[p]) {
		p++
	}
	return p < len(s.src) && s.src[p] == '>'
}

func (s *metaScanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

const asciiSpace = " \t\n\r\f\v"

func isNameByte(c byte) bool {
	return !isSpace(c) && c != '=' && c != '>' && c != '/' && c != '"' && c != '\''
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
