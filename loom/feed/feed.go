// Package feed converts RSS, Atom, and JSON feeds into canonical post
// activities so syndicated blogs can enter the same pipeline as native
// platform payloads.
package feed

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/kmorelli/activityloom/loom/activity"
)

// Converter parses feed documents into activities.
type Converter struct {
	parser *gofeed.Parser // handles rss, atom, and json feeds
}

func NewConverter() Converter {
	return Converter{parser: gofeed.NewParser()}
}

// Parse reads one feed document and returns a post activity per item,
// in feed order.
func (c Converter) Parse(r io.Reader) ([]*activity.Activity, error) {
	parsed, err := c.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var actor *activity.Actor
	if parsed.Title != "" || parsed.Link != "" {
		actor = &activity.Actor{
			ObjectType:  activity.PersonType,
			DisplayName: parsed.Title,
			URL:         parsed.Link,
		}
	}

	activities := make([]*activity.Activity, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		activities = append(activities, c.itemActivity(item, actor))
	}
	return activities, nil
}

func (c Converter) itemActivity(item *gofeed.Item, actor *activity.Actor) *activity.Activity {
	id := item.GUID
	if id == "" {
		id = item.Link
	}
	if id == "" {
		// some feeds have no usable identifier at all
		id = "urn:uuid:" + uuid.NewString()
	}

	obj := &activity.Object{
		ID:          id,
		ObjectType:  activity.ArticleType,
		DisplayName: item.Title,
		ContentHTML: item.Description,
		URL:         item.Link,
	}
	if item.Content != "" {
		obj.ContentHTML = item.Content
	}
	for _, cat := range item.Categories {
		obj.Tags = append(obj.Tags, &activity.Tag{
			ObjectType:  activity.HashtagType,
			DisplayName: cat,
		})
	}

	act := &activity.Activity{
		ID:     id,
		Verb:   activity.PostVerb,
		Actor:  actor.ActorCopy(),
		Object: obj,
	}
	if item.PublishedParsed != nil {
		act.Published = item.PublishedParsed.UTC().Format(activity.TimeFormat)
		obj.Published = act.Published
	}
	if item.UpdatedParsed != nil {
		act.Updated = item.UpdatedParsed.UTC().Format(activity.TimeFormat)
		obj.Updated = act.Updated
	}
	return act
}
