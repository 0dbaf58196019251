// Package textutil provides codepoint-exact text primitives shared by the
// renderer, truncator, and discovery engine. All offsets and lengths are
// counted in Unicode code points, never bytes.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// Length returns the number of Unicode code points in s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Substring returns the codepoint range [start, start+length) of s.
// Out-of-range bounds are clamped rather than panicking.
func Substring(s string, start, length int) string {
	if start < 0 {
		start = 0
	}
	if length < 0 {
		length = 0
	}
	runes := []rune(s)
	if start > len(runes) {
		return ""
	}
	end := start + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

// InsertAt returns a new string with fragment inserted before codepoint
// offset. The input is never mutated. Offsets beyond the end append.
func InsertAt(s string, offset int, fragment string) string {
	if offset < 0 {
		offset = 0
	}
	runes := []rune(s)
	if offset > len(runes) {
		offset = len(runes)
	}
	var b strings.Builder
	b.Grow(len(s) + len(fragment))
	b.WriteString(string(runes[:offset]))
	b.WriteString(fragment)
	b.WriteString(string(runes[offset:]))
	return b.String()
}

// byteToRune converts a byte offset into s to a codepoint offset.
func byteToRune(s string, off int) int {
	return utf8.RuneCountInString(s[:off])
}
