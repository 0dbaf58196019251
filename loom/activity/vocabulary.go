package activity

// ActivityStreams 1.0 vocabulary used by the canonical model

// Object types
const (
	NoteType     = "note"
	ArticleType  = "article"
	PersonType   = "person"
	PlaceType    = "place"
	ImageType    = "image"
	VideoType    = "video"
	EventType    = "event"
	ActivityType = "activity"
	CommentType  = "comment"
	HashtagType  = "hashtag"
	MentionType  = "mention"
)

// Verbs
const (
	PostVerb      = "post"
	LikeVerb      = "like"
	ShareVerb     = "share"
	RSVPYesVerb   = "rsvp-yes"
	RSVPNoVerb    = "rsvp-no"
	RSVPMaybeVerb = "rsvp-maybe"
	InviteVerb    = "invite"
)

const (
	// Timestamp format string for published/updated fields
	TimeFormat = "2006-01-02T15:04:05Z"
)
