package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_TypeOrVerb(t *testing.T) {
	note := &Object{ObjectType: NoteType}
	assert.Equal(t, NoteType, note.TypeOrVerb())

	like := &Object{ObjectType: ActivityType, Verb: LikeVerb}
	assert.Equal(t, LikeVerb, like.TypeOrVerb())

	var missing *Object
	assert.Equal(t, "", missing.TypeOrVerb())
}

func TestObject_Markup(t *testing.T) {
	pre := &Object{Content: "a & b", ContentHTML: "<p>a &amp; b</p>"}
	markup, rendered := pre.Markup()
	assert.Equal(t, "<p>a &amp; b</p>", markup)
	assert.True(t, rendered)

	bare := &Object{Content: "a & b"}
	markup, rendered = bare.Markup()
	assert.Equal(t, "a &amp; b", markup)
	assert.False(t, rendered)
}

func TestObject_AllURLs(t *testing.T) {
	obj := &Object{
		URL:  "http://a/1",
		URLs: []string{"http://a/1", "http://a/2", "http://a/2", "http://a/3"},
	}
	assert.Equal(t, []string{"http://a/1", "http://a/2", "http://a/3"}, obj.AllURLs())
}

func TestObject_Position(t *testing.T) {
	lat, lng := 37.5, -122.4
	place := &Object{ObjectType: PlaceType, Latitude: &lat, Longitude: &lng}
	assert.Equal(t, "+37.500000-122.400000/", place.Position())

	assert.Equal(t, "", (&Object{Latitude: &lat}).Position())
}

func TestTag_Anchored(t *testing.T) {
	start, length := 0, 4
	assert.True(t, (&Tag{StartIndex: &start, Length: &length}).Anchored())
	assert.False(t, (&Tag{StartIndex: &start}).Anchored())
	assert.False(t, (&Tag{}).Anchored())
}

func TestTag_JSONOffsets(t *testing.T) {
	start, length := 0, 3
	b, err := json.Marshal(&Tag{ObjectType: HashtagType, StartIndex: &start, Length: &length})
	require.NoError(t, err)
	// a zero startIndex is a real offset and must survive marshaling
	assert.JSONEq(t, `{"objectType":"hashtag","startIndex":0,"length":3}`, string(b))

	var tag Tag
	require.NoError(t, json.Unmarshal(b, &tag))
	assert.True(t, tag.Anchored())

	var detached Tag
	require.NoError(t, json.Unmarshal([]byte(`{"objectType":"hashtag"}`), &detached))
	assert.False(t, detached.Anchored())
}

func TestActor_ActorCopy(t *testing.T) {
	actor := &Actor{DisplayName: "Alice", URLs: []string{"http://a"}}
	dup := actor.ActorCopy()
	dup.DisplayName = "Bob"
	dup.URLs[0] = "http://b"
	assert.Equal(t, "Alice", actor.DisplayName)
	assert.Equal(t, "http://a", actor.URLs[0])

	var missing *Actor
	assert.Nil(t, missing.ActorCopy())
}
