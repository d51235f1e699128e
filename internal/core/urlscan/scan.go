// Package urlscan locates http and https URLs in free text.
//
// A URL starts at a literal "http://" or "https://" and extends while the
// runes that follow are legal URL characters. The span ends just past the
// last character that may close a URL, so trailing punctuation such as a
// sentence period or a closing parenthesis stays outside the span.
package urlscan

import (
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) of a URL within the scanned text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the byte length of the span
func (s Span) Len() int { return s.End - s.Start }

// In returns the substring of text covered by the span
func (s Span) In(text string) string { return text[s.Start:s.End] }

// Prefixes are the scheme openers recognised by the scanner
var Prefixes = []string{"http://", "https://"}

type class uint8

const (
	classInvalid class = iota
	classNonTerminal
	classTerminal
)

var prefixes = newAutomaton(Prefixes...)

// classify assigns a rune its role in a URL. Alphabetic and numeric runes of any
// script, combining vowel signs included, count as unreserved so non-ASCII paths survive intact
func classify(r rune) class {
	if r == utf8.RuneError {
		return classInvalid
	}
	if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r) {
		return classTerminal
	}
	switch r {
	case '-', '_', '~', '/', '=':
		return classTerminal
	case '.', ':', '?', '#', '[', ']', '@', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '%':
		return classNonTerminal
	}
	return classInvalid
}

// extent walks text from the end of a scheme prefix and returns the end of
// the URL body, or -1 when no terminal rune follows the prefix
func extent(text string, from int) int {
	end := -1
	for i := from; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch classify(r) {
		case classTerminal:
			i += size
			end = i
		case classNonTerminal:
			i += size
		default:
			return end
		}
	}
	return end
}

// FindAll returns the URL spans of text in ascending order.
// Spans never overlap: a scheme prefix inside an already emitted URL is skipped
func FindAll(text string) []Span {
	var out []Span
	lastEnd := 0
	prefixes.findAll(text, func(start, end, _ int) bool {
		if start < lastEnd {
			return true
		}
		stop := extent(text, end)
		if stop < 0 {
			return true
		}
		out = append(out, Span{Start: start, End: stop})
		lastEnd = stop
		return true
	})
	return out
}

// Strings returns the URL substrings of text in scan order
func Strings(text string) []string {
	spans := FindAll(text)
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.In(text)
	}
	return out
}
