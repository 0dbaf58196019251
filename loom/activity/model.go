package activity

// Activity is the top-level record of an action (post, like, share, rsvp)
// performed by an actor on an object.
type Activity struct {
	ID        string   `json:"id,omitempty"`
	Verb      string   `json:"verb,omitempty"`
	Actor     *Actor   `json:"actor,omitempty"`
	Object    *Object  `json:"object,omitempty"`
	Published string   `json:"published,omitempty"`
	Updated   string   `json:"updated,omitempty"`
	Generator *Object  `json:"generator,omitempty"`
	Context   *Context `json:"context,omitempty"`
}

// Context carries conversational metadata for an activity.
type Context struct {
	InReplyTo []*Object `json:"inReplyTo,omitempty"`
}

// Object is the content-bearing entity an activity acts upon.
// Content is plain text with newline-separated paragraphs; ContentHTML,
// when present, is a pre-rendered form and is authoritative over Content.
type Object struct {
	ID          string `json:"id,omitempty"`
	ObjectType  string `json:"objectType,omitempty"`
	Verb        string `json:"verb,omitempty"` // only for objectType "activity"
	Content     string `json:"content,omitempty"`
	ContentHTML string `json:"contentHtml,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Summary     string `json:"summary,omitempty"`
	URL         string `json:"url,omitempty"`
	// URLs is order-significant and may repeat URL.
	URLs      []string `json:"urls,omitempty"`
	Published string   `json:"published,omitempty"`
	Updated   string   `json:"updated,omitempty"`

	Tags        []*Tag    `json:"tags,omitempty"`
	Attachments []*Object `json:"attachments,omitempty"`
	To          []*Object `json:"to,omitempty"`
	Location    *Object   `json:"location,omitempty"`
	Image       []Media   `json:"image,omitempty"`
	Stream      []Media   `json:"stream,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Author *Actor  `json:"author,omitempty"`
	Actor  *Actor  `json:"actor,omitempty"`  // for nested activity objects
	Object *Object `json:"object,omitempty"` // target of a nested activity

	UpstreamDuplicates []string `json:"upstreamDuplicates,omitempty"`
}

// Actor is the person (usually) performing an activity. Actors are shared
// by reference between activities; take a copy before mutating.
type Actor struct {
	ID          string   `json:"id,omitempty"`
	ObjectType  string   `json:"objectType,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	URL         string   `json:"url,omitempty"`
	URLs        []string `json:"urls,omitempty"`
	Image       []Media  `json:"image,omitempty"`
	Username    string   `json:"username,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    *Object  `json:"location,omitempty"`
}

// Tag is a reference embedded in content or standalone. StartIndex and
// Length denote a codepoint range in the plain-text form of the owning
// object's content; a tag without both is "detached" and renders after
// the content instead of inline.
type Tag struct {
	ID          string `json:"id,omitempty"`
	ObjectType  string `json:"objectType,omitempty"`
	URL         string `json:"url,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	StartIndex  *int   `json:"startIndex,omitempty"`
	Length      *int   `json:"length,omitempty"`
}

// Anchored reports whether the tag carries a content offset range.
func (t *Tag) Anchored() bool {
	return t.StartIndex != nil && t.Length != nil
}

// Media is a reference to an image or stream resource.
type Media struct {
	URL string `json:"url,omitempty"`
}
