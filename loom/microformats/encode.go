package microformats

import (
	"html"
	"strconv"
	"strings"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/render"
)

// Encode converts a canonical object into a microformats node suitable
// for re-serialization by an external renderer.
func Encode(obj *activity.Object) *Node {
	return encode(obj, "h-entry")
}

// EncodeActivity converts a top-level activity. Post activities are a
// conduit for their object; other verbs produce an entry carrying the
// corresponding <verb>-of (or rsvp/invitee) property.
func EncodeActivity(act *activity.Activity) *Node {
	if act == nil {
		return nil
	}
	var n *Node
	switch act.Verb {
	case activity.LikeVerb, activity.ShareVerb,
		activity.RSVPYesVerb, activity.RSVPNoVerb, activity.RSVPMaybeVerb,
		activity.InviteVerb:
		wrapper := &activity.Object{
			ObjectType: activity.ActivityType,
			Verb:       act.Verb,
			Object:     act.Object,
			ID:         act.ID,
			Published:  act.Published,
			Updated:    act.Updated,
		}
		n = encode(wrapper, "h-entry")
	default: // post semantics
		n = encode(act.Object, "h-entry")
		if n == nil {
			n = &Node{Type: []string{"h-entry"}}
		}
		if firstPropText(n, "uid") == "" {
			setProp(n, "uid", StringValue(act.ID))
		}
		if firstPropText(n, "published") == "" {
			setProp(n, "published", StringValue(act.Published))
		}
		if firstPropText(n, "updated") == "" {
			setProp(n, "updated", StringValue(act.Updated))
		}
	}
	if act.Actor != nil {
		setProp(n, "author", NodeValue(EncodeActor(act.Actor)))
	}
	if act.Context != nil {
		var refs []Value
		for _, stub := range act.Context.InReplyTo {
			if stub != nil && stub.URL != "" {
				refs = append(refs, StringValue(stub.URL))
			}
		}
		setProp(n, "in-reply-to", refs...)
	}
	return n
}

// EncodeActor converts a canonical actor into an h-card node.
func EncodeActor(a *activity.Actor) *Node {
	if a == nil {
		return nil
	}
	n := &Node{Type: []string{"h-card"}}
	setProp(n, "uid", StringValue(a.ID))
	setProp(n, "name", StringValue(a.DisplayName))
	setProp(n, "username", StringValue(a.Username))
	setProp(n, "description", StringValue(a.Description))
	setProp(n, "url", urlValues(append([]string{a.URL}, a.URLs...))...)
	for _, img := range a.Image {
		setProp(n, "photo", StringValue(img.URL))
	}
	if a.Location != nil {
		setProp(n, "location", NodeValue(encode(a.Location, "h-card")))
	}
	return n
}

func encode(obj *activity.Object, entryClass string) *Node {
	if obj == nil {
		return nil
	}
	switch obj.ObjectType {
	case activity.PersonType:
		return encodeCard(obj)
	case activity.PlaceType:
		return encodePlace(obj)
	}

	n := &Node{Type: []string{entryClass}}
	setProp(n, "uid", StringValue(obj.ID))
	setProp(n, "name", StringValue(obj.DisplayName))
	setProp(n, "summary", StringValue(obj.Summary))
	setProp(n, "published", StringValue(obj.Published))
	setProp(n, "updated", StringValue(obj.Updated))

	// primary url first, order preserved, duplicates collapsed to their
	// first occurrence; upstream duplicates ride along at the end
	setProp(n, "url", urlValues(append(obj.AllURLs(), obj.UpstreamDuplicates...))...)

	encodeContent(n, obj)

	for _, img := range obj.Image {
		setProp(n, "photo", StringValue(img.URL))
	}
	for _, s := range obj.Stream {
		setProp(n, "video", StringValue(s.URL))
	}

	encodeCategories(n, obj)

	if obj.Author != nil {
		setProp(n, "author", NodeValue(EncodeActor(obj.Author)))
	}
	if obj.Location != nil {
		setProp(n, "location", NodeValue(encode(obj.Location, "h-card")))
	}
	applyGeoProps(n, obj)

	if obj.ObjectType == activity.ActivityType {
		encodeVerb(n, obj)
	}

	// recognized attachment kinds become cited children; others are
	// only traversed by the renderer
	for _, att := range obj.Attachments {
		if att == nil {
			continue
		}
		if att.ObjectType == activity.NoteType || att.ObjectType == activity.ArticleType {
			n.Children = append(n.Children, encode(att, "h-cite"))
		}
	}
	return n
}

// encodeContent emits the content property with the plain value and
// rendered HTML side by side. Un-escaping is applied exactly once to
// invert the escaping done when the content was authored.
func encodeContent(n *Node, obj *activity.Object) {
	value := html.UnescapeString(obj.Content)
	markup := render.Render(obj, render.Options{SynthesizeContent: true})
	if value == "" && markup == "" {
		return
	}
	setProp(n, "content", NodeValue(&Node{Value: value, HTML: markup}))
}

// encodeVerb emits the property that marks this entry as a like,
// repost, rsvp, or invite.
func encodeVerb(n *Node, obj *activity.Object) {
	target := func() Value {
		if obj.Object == nil {
			return Value{}
		}
		// flatten targets that are just a reference
		if obj.Object.URL != "" && obj.Object.Content == "" && obj.Object.DisplayName == "" {
			return StringValue(obj.Object.URL)
		}
		return NodeValue(encode(obj.Object, "h-cite"))
	}

	switch obj.Verb {
	case activity.LikeVerb:
		setProp(n, "like-of", target())
	case activity.ShareVerb:
		setProp(n, "repost-of", target())
	case activity.RSVPYesVerb, activity.RSVPNoVerb, activity.RSVPMaybeVerb:
		setProp(n, "rsvp", StringValue(strings.TrimPrefix(obj.Verb, "rsvp-")))
		if obj.Object != nil && obj.Object.URL != "" {
			setProp(n, "in-reply-to", StringValue(obj.Object.URL))
		}
	case activity.InviteVerb:
		if obj.Object != nil {
			setProp(n, "invitee", NodeValue(encode(obj.Object, "h-card")))
		}
	}
}

func encodeCategories(n *Node, obj *activity.Object) {
	var cats []Value
	for _, t := range obj.Tags {
		if t == nil {
			continue
		}
		switch t.ObjectType {
		case activity.PersonType:
			card := &Node{Type: []string{"h-card"}}
			setProp(card, "name", StringValue(t.DisplayName))
			setProp(card, "url", StringValue(t.URL))
			cats = append(cats, NodeValue(card))
		case activity.HashtagType:
			if t.DisplayName != "" {
				cats = append(cats, StringValue(t.DisplayName))
			}
		}
	}
	setProp(n, "category", cats...)
}

func encodeCard(obj *activity.Object) *Node {
	n := &Node{Type: []string{"h-card"}}
	setProp(n, "uid", StringValue(obj.ID))
	setProp(n, "name", StringValue(obj.DisplayName))
	setProp(n, "summary", StringValue(obj.Summary))
	setProp(n, "url", urlValues(obj.AllURLs())...)
	for _, img := range obj.Image {
		setProp(n, "photo", StringValue(img.URL))
	}
	if obj.Location != nil {
		setProp(n, "location", NodeValue(encode(obj.Location, "h-card")))
	}
	applyGeoProps(n, obj)
	return n
}

func encodePlace(obj *activity.Object) *Node {
	n := &Node{Type: []string{"h-geo"}}
	setProp(n, "name", StringValue(obj.DisplayName))
	setProp(n, "url", StringValue(obj.URL))
	applyGeoProps(n, obj)
	return n
}

func applyGeoProps(n *Node, obj *activity.Object) {
	if obj.Latitude != nil && obj.Longitude != nil {
		setProp(n, "latitude", StringValue(strconv.FormatFloat(*obj.Latitude, 'f', -1, 64)))
		setProp(n, "longitude", StringValue(strconv.FormatFloat(*obj.Longitude, 'f', -1, 64)))
	}
}

// urlValues builds property values from urls, collapsing duplicates
// while preserving the position of first occurrence.
func urlValues(urls []string) []Value {
	var vals []Value
	seen := make(map[string]bool)
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		vals = append(vals, StringValue(u))
	}
	return vals
}
