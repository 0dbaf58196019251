package activity

import (
	"fmt"
	"html"
)

// TypeOrVerb returns the object type, or the verb when the object is
// itself an activity.
func (o *Object) TypeOrVerb() string {
	if o == nil {
		return ""
	}
	if o.ObjectType != "" && o.ObjectType != ActivityType {
		return o.ObjectType
	}
	return o.Verb
}

// Markup resolves the authoritative HTML form of the object's content.
// ContentHTML wins when present; otherwise the plain content doubles as
// the HTML form once escaped. The boolean reports whether the result was
// pre-rendered (and so must not have its newlines rewritten).
func (o *Object) Markup() (string, bool) {
	if o.ContentHTML != "" {
		return o.ContentHTML, true
	}
	return html.EscapeString(o.Content), false
}

// AllURLs returns the object's unique URLs, primary URL first,
// preserving the order of first occurrence.
func (o *Object) AllURLs() []string {
	urls := make([]string, 0, len(o.URLs)+1)
	seen := make(map[string]bool)
	for _, u := range append([]string{o.URL}, o.URLs...) {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// Position formats latitude and longitude as an ISO 6709 location
// string, or returns "" if either coordinate is missing.
func (o *Object) Position() string {
	if o.Latitude == nil || o.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("%+010.6f%+011.6f/", *o.Latitude, *o.Longitude)
}

// ActorCopy returns an independent copy of the actor so that a
// cross-referencing activity never shares ownership.
func (a *Actor) ActorCopy() *Actor {
	if a == nil {
		return nil
	}
	dup := *a
	dup.URLs = append([]string(nil), a.URLs...)
	dup.Image = append([]Media(nil), a.Image...)
	return &dup
}
