package microformats

import (
	"strconv"
	"strings"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/render"
	"github.com/kmorelli/activityloom/loom/telemetry"
)

// Decode converts a parsed microformats node into a canonical object.
// Malformed or missing fields never fail; every path has a default. A
// node with no recognizable structure logs a warning and decodes to nil.
func Decode(n *Node) *activity.Object {
	if n.Empty() {
		telemetry.Warn("ignoring microformats node with no type or properties")
		return nil
	}
	switch {
	case n.HasType("h-geo") || n.HasType("p-location"):
		return decodePlace(n)
	case n.HasType("h-card"):
		return decodeCard(n)
	default: // h-entry, h-cite, and untyped nodes
		return decodeEntry(n)
	}
}

// DecodeActivity decodes a node and wraps it as a top-level activity,
// pulling the author up as the actor and in-reply-to references into
// the activity context.
func DecodeActivity(n *Node) *activity.Activity {
	obj := Decode(n)
	if obj == nil {
		return nil
	}
	act := &activity.Activity{
		ID:        obj.ID,
		Verb:      obj.Verb,
		Object:    obj,
		Published: obj.Published,
		Updated:   obj.Updated,
		Actor:     obj.Author.ActorCopy(),
	}
	if refs := stringURLs(propValues(n, "in-reply-to")); len(refs) > 0 {
		act.Context = &activity.Context{}
		for _, u := range refs {
			act.Context.InReplyTo = append(act.Context.InReplyTo, &activity.Object{URL: u})
		}
	}
	return act
}

// DecodeActor converts an h-card node into a canonical actor.
func DecodeActor(n *Node) *activity.Actor {
	if n.Empty() {
		return nil
	}
	a := &activity.Actor{
		ObjectType:  activity.PersonType,
		ID:          firstPropText(n, "uid"),
		DisplayName: firstPropText(n, "name"),
		Username:    firstPropText(n, "username"),
		Description: firstPropText(n, "description"),
	}
	urls := stringURLs(propValues(n, "url"))
	if len(urls) > 0 {
		a.URL = urls[0]
		if len(urls) > 1 {
			a.URLs = urls
		}
	}
	for _, v := range propValues(n, "photo") {
		if u := v.AsURL(); absoluteURL(u) {
			a.Image = append(a.Image, activity.Media{URL: u})
		}
	}
	if v, ok := firstProp(n, "location"); ok {
		a.Location = decodeLocation(v)
	}
	if a.DisplayName == "" && a.URL == "" && a.ID == "" && a.Username == "" {
		return nil
	}
	return a
}

func decodeEntry(n *Node) *activity.Object {
	obj := &activity.Object{
		ID:          firstPropText(n, "uid"),
		DisplayName: firstPropText(n, "name"),
		Summary:     firstPropText(n, "summary"),
		Published:   firstPropText(n, "published"),
		Updated:     firstPropText(n, "updated"),
	}

	urls := stringURLs(propValues(n, "url"))
	if len(urls) > 0 {
		obj.URL = urls[0]
		if len(urls) > 1 {
			obj.URLs = urls
		}
	}

	decodeContent(n, obj)
	decodePhotos(n, obj)
	for _, v := range propValues(n, "video") {
		if u := v.AsURL(); absoluteURL(u) {
			obj.Stream = append(obj.Stream, activity.Media{URL: u})
		}
	}

	if v, ok := firstProp(n, "location"); ok {
		obj.Location = decodeLocation(v)
	}
	applyGeo(n, obj)

	if v, ok := firstProp(n, "author"); ok {
		obj.Author = DecodeActor(v.AsNode())
	}

	decodeCategories(n, obj)

	for _, child := range n.Children {
		if att := Decode(child); att != nil {
			obj.Attachments = append(obj.Attachments, att)
		}
	}

	decodeVerb(n, obj)
	if obj.ObjectType == "" {
		obj.ObjectType = inferEntryType(n, obj)
	}
	return obj
}

// decodeVerb applies the <verb>-of rule: a like-of or repost-of
// property (or an rsvp or invitee) turns the entry into an activity
// with the referenced value as its object. A bare "like" or "repost"
// property without the -of suffix is ambiguous and sets nothing.
func decodeVerb(n *Node, obj *activity.Object) {
	asActivity := func(verb string, target *activity.Object) {
		obj.ObjectType = activity.ActivityType
		obj.Verb = verb
		obj.Object = target
	}

	if targets := propValues(n, "like-of"); len(targets) > 0 {
		asActivity(activity.LikeVerb, decodeTarget(targets[0]))
		return
	}
	if targets := propValues(n, "repost-of"); len(targets) > 0 {
		asActivity(activity.ShareVerb, decodeTarget(targets[0]))
		return
	}
	if rsvp := firstPropText(n, "rsvp"); rsvp != "" {
		switch rsvp {
		case "yes", "no", "maybe":
			var target *activity.Object
			if refs := stringURLs(propValues(n, "in-reply-to")); len(refs) > 0 {
				target = &activity.Object{URL: refs[0]}
			}
			asActivity("rsvp-"+rsvp, target)
		default:
			telemetry.Warn("unrecognized rsvp value [%s]", rsvp)
		}
		return
	}
	if v, ok := firstProp(n, "invitee"); ok {
		invitee := Decode(v.AsNode())
		if invitee != nil && invitee.ObjectType == "" {
			invitee.ObjectType = activity.PersonType
		}
		asActivity(activity.InviteVerb, invitee)
	}
}

func decodeTarget(v Value) *activity.Object {
	if v.Node == nil {
		if v.Str == "" {
			return nil
		}
		return &activity.Object{URL: v.Str}
	}
	return Decode(v.Node)
}

// decodeContent resolves the content property: explicit HTML wins over
// the plain value, and annotated HTML is run through the renderer's
// inverse to recover entity tags.
func decodeContent(n *Node, obj *activity.Object) {
	v, ok := firstProp(n, "content")
	if !ok {
		return
	}
	cn := v.Node
	if cn == nil || cn.HTML == "" {
		obj.Content = v.AsText()
		return
	}
	// newlines inside e-content HTML are formatting, not content
	markup := strings.ReplaceAll(cn.HTML, "\n", " ")
	obj.ContentHTML = markup
	plain, tags := render.ParseAnnotated(markup)
	if cn.Value != "" {
		obj.Content = cn.Value
	} else {
		obj.Content = plain
	}
	obj.Tags = append(obj.Tags, tags...)
}

// decodePhotos applies the caption heuristic: only URL-shaped photo
// values become image references. A bare value that is not an absolute
// URL, or that duplicates the entry name, is caption text.
func decodePhotos(n *Node, obj *activity.Object) {
	name := firstPropText(n, "name")
	for _, v := range propValues(n, "photo") {
		u := v.AsURL()
		if absoluteURL(u) && u != name {
			obj.Image = append(obj.Image, activity.Media{URL: u})
			continue
		}
		if t := v.AsText(); t != "" && obj.DisplayName == "" {
			obj.DisplayName = t
		}
	}
}

func decodeCategories(n *Node, obj *activity.Object) {
	for _, v := range propValues(n, "category") {
		if v.Node == nil {
			if v.Str != "" {
				obj.Tags = append(obj.Tags, &activity.Tag{
					ObjectType:  activity.HashtagType,
					DisplayName: v.Str,
				})
			}
			continue
		}
		obj.Tags = append(obj.Tags, &activity.Tag{
			ObjectType:  activity.PersonType,
			URL:         v.AsURL(),
			DisplayName: firstPropText(v.Node, "name"),
		})
	}
}

// inferEntryType distinguishes articles from notes and comments once
// verb detection has not claimed the entry.
func inferEntryType(n *Node, obj *activity.Object) string {
	if len(propValues(n, "in-reply-to")) > 0 {
		return activity.CommentType
	}
	if obj.DisplayName != "" && obj.Content != "" &&
		!strings.HasPrefix(squeeze(obj.Content), squeeze(obj.DisplayName)) {
		return activity.ArticleType
	}
	return activity.NoteType
}

// squeeze collapses runs of whitespace so name/content comparison
// ignores formatting differences.
func squeeze(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func decodeCard(n *Node) *activity.Object {
	obj := &activity.Object{
		ObjectType:  activity.PersonType,
		ID:          firstPropText(n, "uid"),
		DisplayName: firstPropText(n, "name"),
		Summary:     firstPropText(n, "summary"),
	}
	urls := stringURLs(propValues(n, "url"))
	if len(urls) > 0 {
		obj.URL = urls[0]
		if len(urls) > 1 {
			obj.URLs = urls
		}
	}
	for _, v := range propValues(n, "photo") {
		if u := v.AsURL(); absoluteURL(u) {
			obj.Image = append(obj.Image, activity.Media{URL: u})
		}
	}
	if v, ok := firstProp(n, "location"); ok {
		obj.Location = decodeLocation(v)
	}
	applyGeo(n, obj)
	return obj
}

func decodePlace(n *Node) *activity.Object {
	obj := &activity.Object{
		ObjectType:  activity.PlaceType,
		DisplayName: firstPropText(n, "name"),
	}
	if obj.DisplayName == "" {
		obj.DisplayName = n.Value
	}
	if u := firstPropText(n, "url"); u != "" {
		obj.URL = u
	}
	applyGeo(n, obj)
	return obj
}

func decodeLocation(v Value) *activity.Object {
	if v.Node == nil {
		if v.Str == "" {
			return nil
		}
		return &activity.Object{ObjectType: activity.PlaceType, DisplayName: v.Str}
	}
	loc := Decode(v.Node)
	if loc != nil && loc.ObjectType != activity.PlaceType {
		loc.ObjectType = activity.PlaceType
	}
	return loc
}

// applyGeo parses latitude/longitude properties. Unparseable
// coordinates are logged and skipped, never fatal.
func applyGeo(n *Node, obj *activity.Object) {
	latText := firstPropText(n, "latitude")
	lngText := firstPropText(n, "longitude")
	if latText == "" || lngText == "" {
		return
	}
	lat, latErr := strconv.ParseFloat(latText, 64)
	lng, lngErr := strconv.ParseFloat(lngText, 64)
	if latErr != nil || lngErr != nil {
		telemetry.Warn("could not parse latitude/longitude (%s, %s)", latText, lngText)
		return
	}
	obj.Latitude = &lat
	obj.Longitude = &lng
}
