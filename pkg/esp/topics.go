package esp

import (
	"context"
	"time"
)

// NestedNearbyTopic is a community report close to a coordinate.
type NestedNearbyTopic struct {
	client *Client

	Active    time.Time `json:"active"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Distance  float64   `json:"distance"`
	Followers int       `json:"followers"`
	Timestamp time.Time `json:"timestamp"`
}

// NestedNearbyTopicFromPayload builds a NestedNearbyTopic.
func NestedNearbyTopicFromPayload(c *Client, p NestedNearbyTopicPayload) (NestedNearbyTopic, error) {
	active, err := parseTimestamp("active", p.Active)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	body, err := required("body", p.Body)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	category, err := required("category", p.Category)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	distance, err := required("distance", p.Distance)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	followers, err := required("followers", p.Followers)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	timestamp, err := parseTimestamp("timestamp", p.Timestamp)
	if err != nil {
		return NestedNearbyTopic{}, err
	}
	return NestedNearbyTopic{
		client:    c,
		Active:    active,
		Body:      body,
		Category:  category,
		Distance:  distance,
		Followers: followers,
		Timestamp: timestamp,
	}, nil
}

// NearbyTopic lists the topics around a coordinate, in API order.
type NearbyTopic struct {
	client *Client

	Topics []NestedNearbyTopic `json:"topics"`
}

// NearbyTopicFromPayload builds a NearbyTopic.
func NearbyTopicFromPayload(c *Client, p NearbyTopicPayload) (*NearbyTopic, error) {
	raw, err := required("topics", p.Topics)
	if err != nil {
		return nil, err
	}
	topics := make([]NestedNearbyTopic, 0, len(raw))
	for i, rt := range raw {
		topic, err := NestedNearbyTopicFromPayload(c, rt)
		if err != nil {
			return nil, nest(index("topics", i), err)
		}
		topics = append(topics, topic)
	}
	return &NearbyTopic{client: c, Topics: topics}, nil
}

// FetchNearbyTopics looks up topics around lat/lon through the client that
// built t.
func (t *NearbyTopic) FetchNearbyTopics(ctx context.Context, lat, lon float64) (*NearbyTopic, error) {
	return t.client.FetchNearbyTopics(ctx, lat, lon)
}

// FetchNearbyTopics returns the community topics around lat/lon. The whole
// "topics" envelope is decoded, not a single topic.
func (c *Client) FetchNearbyTopics(ctx context.Context, lat, lon float64) (*NearbyTopic, error) {
	var p NearbyTopicPayload
	if err := c.get(ctx, "/topics_nearby", coordinates(lat, lon), &p); err != nil {
		return nil, err
	}
	return NearbyTopicFromPayload(c, p)
}
