package kafka

import (
	"encoding/json"
	"strconv"
	"time"

	"gigboard/internal/config"
	"gigboard/internal/models"
)

// ChangeEvent is the payload streamed for every committed directory write.
type ChangeEvent struct {
	Entity  string      `json:"entity"`
	Action  string      `json:"action"`
	ID      int64       `json:"id"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// DirectoryPublisher streams venue/artist/show changes onto their topics.
type DirectoryPublisher struct {
	Producer *Producer
	Topics   config.TopicConfig
}

func NewDirectoryPublisher(producer *Producer, topics config.TopicConfig) *DirectoryPublisher {
	return &DirectoryPublisher{Producer: producer, Topics: topics}
}

func (p *DirectoryPublisher) publish(topic, entity, action string, id int64, payload interface{}) error {
	event := ChangeEvent{
		Entity:  entity,
		Action:  action,
		ID:      id,
		Payload: payload,
		At:      time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Producer.Publish(topic, strconv.FormatInt(id, 10), value)
}

func (p *DirectoryPublisher) PublishVenueChanged(action string, venue models.Venue) error {
	return p.publish(p.Topics.VenuesChanged, "venue", action, venue.ID, venue)
}

func (p *DirectoryPublisher) PublishArtistChanged(action string, artist models.Artist) error {
	return p.publish(p.Topics.ArtistsChanged, "artist", action, artist.ID, artist)
}

func (p *DirectoryPublisher) PublishShowCreated(show models.Show) error {
	return p.publish(p.Topics.ShowsCreated, "show", "created", show.ID, show)
}

// NoopPublisher satisfies the service publisher interfaces when Kafka is
// disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishVenueChanged(action string, venue models.Venue) error    { return nil }
func (NoopPublisher) PublishArtistChanged(action string, artist models.Artist) error { return nil }
func (NoopPublisher) PublishShowCreated(show models.Show) error                      { return nil }
