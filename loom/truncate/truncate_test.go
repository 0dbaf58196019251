package truncate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_EllipsizesAtTokenBoundary(t *testing.T) {
	cfg := Config{MaxLength: 20, PlaceholderLength: 5}
	got := Truncate("url http://foo.co/bar ellipsize http://foo.co/baz", "", cfg, false)
	assert.Equal(t, "url http://foo.co/bar ellipsize…", got)
}

func TestTruncate_WithinBudgetUnchanged(t *testing.T) {
	cfg := Config{MaxLength: 100, PlaceholderLength: 5}
	content := "short  note with   odd spacing"
	assert.Equal(t, content, Truncate(content, "", cfg, false))
}

func TestTruncate_URLsCostPlaceholderLength(t *testing.T) {
	// the real url is far longer than the budget, but bills as 5
	cfg := Config{MaxLength: 14, PlaceholderLength: 5}
	content := "word http://very-long.example/with/a/really/long/path end"
	assert.Equal(t, content, Truncate(content, "", cfg, false))
}

func TestTruncate_TokenFillingWholeBudgetKept(t *testing.T) {
	cfg := Config{MaxLength: 5, PlaceholderLength: 5}
	assert.Equal(t, "hello", Truncate("hello", "", cfg, false))
}

func TestTruncate_EllipsisOnlyWhenNothingFits(t *testing.T) {
	cfg := Config{MaxLength: 5, PlaceholderLength: 5}
	assert.Equal(t, "…", Truncate("abcdefghij", "", cfg, false))
}

func TestTruncate_TrailingSlashURLPreserved(t *testing.T) {
	cfg := Config{MaxLength: 30, PlaceholderLength: 5}
	content := "see http://x.com/y/"
	assert.Equal(t, content, Truncate(content, "", cfg, false))
}

func TestTruncate_AppendsPermalink(t *testing.T) {
	cfg := Config{MaxLength: 20, PlaceholderLength: 5}
	got := Truncate("hi", "http://s/p", cfg, true)
	assert.Equal(t, "hi (http://s/p)", got)

	// already present, nothing appended
	got = Truncate("hi http://s/p", "http://s/p", cfg, true)
	assert.Equal(t, "hi http://s/p", got)
}

func TestTruncate_EmptyPermalinkLeavesFitUnchanged(t *testing.T) {
	cfg := Config{MaxLength: 20, PlaceholderLength: 5}
	assert.Equal(t, "hi ", Truncate("hi ", "", cfg, true))
}

func TestTruncate_LeadingWhitespacePreserved(t *testing.T) {
	cfg := Config{MaxLength: 10, PlaceholderLength: 5}
	assert.Equal(t, "  aa bb…", Truncate("  aa bb cccccccccc", "", cfg, false))
}

func TestTruncate_PermalinkSqueezesContent(t *testing.T) {
	cfg := Config{MaxLength: 12, PlaceholderLength: 4}
	got := Truncate("aaaa bbbb cccc dddd", "http://s/p", cfg, true)
	assert.Equal(t, "aaaa… (http://s/p)", got)
}

func TestTruncate_Idempotent(t *testing.T) {
	cfg := Config{MaxLength: 12, PlaceholderLength: 4}
	cases := []string{
		"aaaa bbbb cccc dddd",
		"short",
		"http://one.example/a http://two.example/b http://three.example/c",
	}
	for _, content := range cases {
		once := Truncate(content, "http://s/p", cfg, true)
		twice := Truncate(once, "http://s/p", cfg, true)
		assert.Equal(t, once, twice, content)
	}
}

func TestTruncate_CodepointBudget(t *testing.T) {
	// 10 codepoints of multibyte text fit a 10-codepoint budget
	cfg := Config{MaxLength: 10, PlaceholderLength: 5}
	content := "ここにほんごのぶんです"[:30] // 10 runes, 30 bytes
	assert.Equal(t, content, Truncate(content, "", cfg, false))
}
