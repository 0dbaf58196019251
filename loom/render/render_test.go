package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorelli/activityloom/loom/activity"
)

func anchoredTag(objectType, url, name string, start, length int) *activity.Tag {
	return &activity.Tag{
		ObjectType:  objectType,
		URL:         url,
		DisplayName: name,
		StartIndex:  &start,
		Length:      &length,
	}
}

func TestRender_InlineMention(t *testing.T) {
	obj := &activity.Object{
		ObjectType: activity.NoteType,
		Content:    "hello @alice world",
		Tags: []*activity.Tag{
			anchoredTag(activity.PersonType, "http://a.example", "@alice", 6, 6),
		},
	}
	html := Render(obj, Options{})
	assert.Equal(t, `hello <a class="mention" href="http://a.example">@alice</a> world`, html)
}

func TestRender_UnicodeOffsets(t *testing.T) {
	obj := &activity.Object{
		Content: "héllo wörld",
		Tags: []*activity.Tag{
			anchoredTag(activity.HashtagType, "http://w", "", 6, 5),
		},
	}
	html := Render(obj, Options{})
	assert.Contains(t, html, `<a class="tag" href="http://w">wörld</a>`)
	assert.True(t, strings.HasPrefix(html, "héllo "))
}

func TestRender_DetachedHashtag(t *testing.T) {
	// a tag with no offsets renders standalone after the content
	obj := &activity.Object{
		Tags: []*activity.Tag{{ObjectType: activity.HashtagType, URL: "http://c"}},
	}
	html := Render(obj, Options{})
	assert.Equal(t, `<a class="tag" href="http://c"></a>`, strings.TrimSpace(html))
}

func TestRender_TagWithoutURLKeepsMarker(t *testing.T) {
	obj := &activity.Object{
		Tags: []*activity.Tag{{ObjectType: activity.PersonType, DisplayName: "Alice"}},
	}
	html := Render(obj, Options{})
	// never silently dropped, but nothing to link to
	assert.Equal(t, `<a class="mention"></a>`, strings.TrimSpace(html))
}

func TestRender_NewlinesBecomeBreaks(t *testing.T) {
	obj := &activity.Object{Content: "first\nsecond"}
	assert.Equal(t, "first<br />\nsecond", Render(obj, Options{}))
}

func TestRender_PrerenderedHTMLUntouched(t *testing.T) {
	obj := &activity.Object{
		Content:     "ab",
		ContentHTML: "<p>ab</p>\n<p>cd</p>",
		Tags:        []*activity.Tag{anchoredTag(activity.PersonType, "http://a", "ab", 0, 2)},
	}
	html := Render(obj, Options{})
	// newlines inside pre-rendered content are not rewritten, and
	// inline offsets don't apply to it
	assert.True(t, strings.HasPrefix(html, "<p>ab</p>\n<p>cd</p>"))
	assert.Contains(t, html, `<a class="mention" href="http://a">ab</a>`)
}

func TestRender_EscapesPlainContent(t *testing.T) {
	obj := &activity.Object{Content: "x < y & z"}
	assert.Equal(t, "x &lt; y &amp; z", Render(obj, Options{}))
}

func TestRender_OutOfBoundsTagDemoted(t *testing.T) {
	obj := &activity.Object{
		Content: "short",
		Tags: []*activity.Tag{
			anchoredTag(activity.HashtagType, "http://c", "#far", 10, 4),
		},
	}
	html := Render(obj, Options{})
	assert.True(t, strings.HasPrefix(html, "short"))
	assert.Contains(t, html, `<a class="tag" href="http://c">#far</a>`)
}

func TestRender_ImageAttachmentThumbnail(t *testing.T) {
	obj := &activity.Object{
		Content: "pic",
		Attachments: []*activity.Object{{
			ObjectType:  activity.ImageType,
			URL:         "http://p",
			DisplayName: "Sunset",
			Image:       []activity.Media{{URL: "http://img.jpg"}},
		}},
	}
	html := Render(obj, Options{})
	assert.Contains(t, html, `<a class="link" href="http://p">`)
	assert.Contains(t, html, `<img class="thumbnail" src="http://img.jpg" alt="Sunset" />`)
	assert.Contains(t, html, `<span class="name">Sunset</span>`)
}

func TestRender_NonImageAttachmentSuppressesImage(t *testing.T) {
	obj := &activity.Object{
		Attachments: []*activity.Object{{
			ObjectType:  activity.EventType,
			URL:         "http://e",
			DisplayName: "Meetup",
			Image:       []activity.Media{{URL: "http://poster.jpg"}},
		}},
	}
	html := Render(obj, Options{})
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, `<span class="name">Meetup</span>`)
}

func TestRender_NoteAttachmentSkipped(t *testing.T) {
	obj := &activity.Object{
		Content: "body",
		Attachments: []*activity.Object{{
			ObjectType: activity.NoteType,
			Content:    "cited elsewhere",
		}},
	}
	assert.Equal(t, "body", Render(obj, Options{}))
}

func TestRender_SynthesizedContent(t *testing.T) {
	like := &activity.Object{
		ObjectType: activity.ActivityType,
		Verb:       activity.LikeVerb,
		Object:     &activity.Object{URL: "http://x/y"},
	}
	assert.Equal(t, `<a href="http://x/y">likes this.</a>`,
		Render(like, Options{SynthesizeContent: true}))

	share := &activity.Object{
		ObjectType: activity.ActivityType,
		Verb:       activity.ShareVerb,
		Object:     &activity.Object{URL: "http://x/y"},
	}
	assert.Equal(t, `<a href="http://x/y">shared this.</a>`,
		Render(share, Options{SynthesizeContent: true}))

	// without the option nothing is generated
	assert.Equal(t, "", Render(like, Options{}))
}

func TestRender_OffsetsReferToOriginalText(t *testing.T) {
	// two tags; annotating the first must not disturb the second
	obj := &activity.Object{
		Content: "hey @alice check this #go",
		Tags: []*activity.Tag{
			anchoredTag(activity.HashtagType, "http://t/go", "#go", 22, 3),
			anchoredTag(activity.PersonType, "http://a", "@alice", 4, 6),
		},
	}
	html := Render(obj, Options{})
	require.Contains(t, html, `<a class="mention" href="http://a">@alice</a>`)
	require.Contains(t, html, `<a class="tag" href="http://t/go">#go</a>`)
	assert.True(t, strings.HasPrefix(html, "hey "))
}
