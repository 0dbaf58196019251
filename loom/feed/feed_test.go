package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorelli/activityloom/loom/activity"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>Example Blog</title>
<link>http://blog.example/</link>
<item>
<title>First Post</title>
<link>http://blog.example/first</link>
<guid>tag:blog.example,2023:first</guid>
<description>A short summary</description>
<content:encoded><![CDATA[<p>Full body</p>]]></content:encoded>
<category>go</category>
<category>indieweb</category>
<pubDate>Tue, 10 Jan 2023 12:00:00 GMT</pubDate>
</item>
<item>
<title>Second Post</title>
<link>http://blog.example/second</link>
<description>plain</description>
</item>
<item>
<title>Orphan Post</title>
</item>
</channel>
</rss>`

func TestConverter_Parse(t *testing.T) {
	activities, err := NewConverter().Parse(strings.NewReader(sampleRSS))
	require.NoError(t, err)
	require.Len(t, activities, 3)

	first := activities[0]
	assert.Equal(t, activity.PostVerb, first.Verb)
	assert.Equal(t, "tag:blog.example,2023:first", first.ID)
	assert.Equal(t, "2023-01-10T12:00:00Z", first.Published)
	require.NotNil(t, first.Actor)
	assert.Equal(t, "Example Blog", first.Actor.DisplayName)
	assert.Equal(t, "http://blog.example/", first.Actor.URL)

	obj := first.Object
	require.NotNil(t, obj)
	assert.Equal(t, activity.ArticleType, obj.ObjectType)
	assert.Equal(t, "First Post", obj.DisplayName)
	// content:encoded wins over the description summary
	assert.Equal(t, "<p>Full body</p>", obj.ContentHTML)
	require.Len(t, obj.Tags, 2)
	assert.Equal(t, activity.HashtagType, obj.Tags[0].ObjectType)
	assert.Equal(t, "go", obj.Tags[0].DisplayName)
	assert.Equal(t, "indieweb", obj.Tags[1].DisplayName)
}

func TestConverter_ItemIdentityFallbacks(t *testing.T) {
	activities, err := NewConverter().Parse(strings.NewReader(sampleRSS))
	require.NoError(t, err)
	require.Len(t, activities, 3)

	// no guid falls back to the link
	assert.Equal(t, "http://blog.example/second", activities[1].ID)
	assert.Empty(t, activities[1].Published)

	// no guid and no link mints an identifier
	assert.True(t, strings.HasPrefix(activities[2].ID, "urn:uuid:"))
}

func TestConverter_ActorCopiesAreIndependent(t *testing.T) {
	activities, err := NewConverter().Parse(strings.NewReader(sampleRSS))
	require.NoError(t, err)

	activities[0].Actor.DisplayName = "changed"
	assert.Equal(t, "Example Blog", activities[1].Actor.DisplayName)
}

func TestConverter_ParseError(t *testing.T) {
	_, err := NewConverter().Parse(strings.NewReader("not a feed"))
	assert.Error(t, err)
}
