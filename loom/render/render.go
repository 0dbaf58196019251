// Package render converts a canonical object's content and offset-tagged
// entities into annotated HTML, and recovers plain text and entities from
// annotated HTML. Tag offsets always refer to the original plain text, so
// annotation never disturbs the offsets of later tags.
package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/textutil"
)

// Options control optional rendering behavior.
type Options struct {
	// SynthesizeContent generates a short "likes this." / "shared this."
	// phrase when a like or share activity carries no content of its own.
	SynthesizeContent bool
}

// classFor maps a tag's objectType to the CSS class used for its anchor.
func classFor(objectType string) string {
	if objectType == activity.PersonType {
		return "mention"
	}
	return "tag"
}

// Render walks the object's plain-text content and wraps every anchored
// tag's codepoint range in a link. Detached tags are appended after the
// content, attachments become captioned thumbnails, and newlines in plain
// content become line breaks. Pre-rendered HTML content is passed through
// untouched.
func Render(obj *activity.Object, opts Options) string {
	if obj == nil {
		return ""
	}

	anchored, detached := splitTags(obj)

	var out string
	if obj.ContentHTML != "" {
		// offsets refer to the plain-text form, so inline annotation
		// does not apply to pre-rendered content
		out = obj.ContentHTML
		detached = append(anchored, detached...)
	} else {
		out = annotate(obj.Content, anchored)
		out = strings.ReplaceAll(out, "\n", "<br />\n")
	}

	out += renderAttachments(obj)

	if opts.SynthesizeContent && obj.Content == "" && obj.ContentHTML == "" {
		out += synthesize(obj)
	}

	for _, t := range detached {
		if t.URL == "" {
			// no target to link to, but authoring intent is preserved
			// with an empty anchor marker
			out += fmt.Sprintf("\n<a class=%q></a>", classFor(t.ObjectType))
			continue
		}
		out += fmt.Sprintf("\n<a class=%q href=%q>%s</a>",
			classFor(t.ObjectType), t.URL, html.EscapeString(t.DisplayName))
	}

	return out
}

// splitTags partitions tags into inlineable and detached. Tags whose
// range falls outside the content are demoted to detached rather than
// dropped, as are overlaps after the first.
func splitTags(obj *activity.Object) (anchored, detached []*activity.Tag) {
	limit := textutil.Length(obj.Content)
	var candidates []*activity.Tag
	for _, t := range obj.Tags {
		if t == nil {
			continue
		}
		if t.Anchored() && *t.StartIndex >= 0 && *t.Length >= 0 && *t.StartIndex+*t.Length <= limit {
			candidates = append(candidates, t)
		} else {
			detached = append(detached, t)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return *candidates[i].StartIndex < *candidates[j].StartIndex
	})
	lastEnd := 0
	for _, t := range candidates {
		if *t.StartIndex < lastEnd {
			detached = append(detached, t)
			continue
		}
		anchored = append(anchored, t)
		lastEnd = *t.StartIndex + *t.Length
	}
	return anchored, detached
}

// annotate rebuilds plain content as HTML, wrapping each tag's codepoint
// range in an anchor. Tags are applied in offset order against the
// original text, so every offset is interpreted relative to the
// unmodified plain form.
func annotate(content string, tags []*activity.Tag) string {
	if len(tags) == 0 {
		return html.EscapeString(content)
	}
	var b strings.Builder
	last := 0
	for _, t := range tags {
		start, length := *t.StartIndex, *t.Length
		b.WriteString(html.EscapeString(textutil.Substring(content, last, start-last)))
		text := textutil.Substring(content, start, length)
		if text == "" {
			text = t.DisplayName
		}
		if t.URL != "" {
			b.WriteString(fmt.Sprintf("<a class=%q href=%q>%s</a>",
				classFor(t.ObjectType), t.URL, html.EscapeString(text)))
		} else {
			b.WriteString(fmt.Sprintf("<span class=%q>%s</span>",
				classFor(t.ObjectType), html.EscapeString(text)))
		}
		last = start + length
	}
	b.WriteString(html.EscapeString(textutil.Substring(content, last, textutil.Length(content)-last)))
	return b.String()
}

// renderAttachments renders non-note, non-article attachments as
// captioned thumbnail blocks. Only image attachments render a nested
// image; other kinds suppress theirs even when present.
func renderAttachments(obj *activity.Object) string {
	var b strings.Builder
	for _, att := range obj.Attachments {
		if att == nil || att.ObjectType == activity.NoteType || att.ObjectType == activity.ArticleType {
			continue
		}
		name := att.DisplayName
		if att.ObjectType == activity.VideoType {
			if len(att.Stream) > 0 && att.Stream[0].URL != "" {
				b.WriteString(fmt.Sprintf("\n<p><video class=\"thumbnail\" src=%q controls></video>", att.Stream[0].URL))
				if name != "" {
					b.WriteString(fmt.Sprintf("\n<span class=\"name\">%s</span>", html.EscapeString(name)))
				}
				b.WriteString("\n</p>")
			}
			continue
		}
		b.WriteString("\n<p>")
		url := att.URL
		if url == "" {
			url = obj.URL
		}
		linked := url != ""
		if linked {
			b.WriteString(fmt.Sprintf("\n<a class=\"link\" href=%q>", url))
		}
		if att.ObjectType == activity.ImageType && len(att.Image) > 0 && att.Image[0].URL != "" {
			b.WriteString(fmt.Sprintf("\n<img class=\"thumbnail\" src=%q alt=%q />",
				att.Image[0].URL, name))
		}
		if name != "" {
			b.WriteString(fmt.Sprintf("\n<span class=\"name\">%s</span>", html.EscapeString(name)))
		}
		if linked {
			b.WriteString("\n</a>")
		}
		if att.Summary != "" && att.Summary != name {
			b.WriteString(fmt.Sprintf("\n<span class=\"summary\">%s</span>", html.EscapeString(att.Summary)))
		}
		b.WriteString("\n</p>")
	}
	return b.String()
}

// synthesize generates a phrase for like and share activities that have
// no textual content, linking to the target when it has a URL.
func synthesize(obj *activity.Object) string {
	var phrase string
	switch obj.TypeOrVerb() {
	case activity.LikeVerb:
		phrase = "likes this."
	case activity.ShareVerb:
		phrase = "shared this."
	default:
		return ""
	}
	if obj.Object == nil || obj.Object.URL == "" {
		return phrase
	}
	return fmt.Sprintf("<a href=%q>%s</a>", obj.Object.URL, phrase)
}
