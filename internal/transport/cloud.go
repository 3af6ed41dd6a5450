// Package transport carries live broadcasts between counter nodes over a
// gocloud pubsub topic.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jfyne/live"
	"github.com/rs/xid"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

var _ live.PubSubTransport = &Cloud{}

// Cloud is a live.PubSubTransport backed by gocloud pubsub.
type Cloud struct {
	url   string
	node  string
	topic *pubsub.Topic
}

// Open the topic at url, for example "mem://counter".
func Open(ctx context.Context, url string) (*Cloud, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("could not open topic %s: %w", url, err)
	}
	return &Cloud{
		url:   url,
		node:  xid.New().String(),
		topic: topic,
	}, nil
}

// Node identifies this process in message metadata.
func (c *Cloud) Node() string {
	return c.node
}

// Publish a live event onto the topic.
func (c *Cloud) Publish(ctx context.Context, topic string, msg live.Event) error {
	m, err := encode(c.node, topic, msg)
	if err != nil {
		return err
	}
	return c.topic.Send(ctx, m)
}

// Listen blocks receiving messages and passing them to p until ctx is done.
func (c *Cloud) Listen(ctx context.Context, p *live.PubSub) error {
	sub, err := pubsub.OpenSubscription(ctx, c.url)
	if err != nil {
		return fmt.Errorf("could not open subscription: %w", err)
	}
	defer sub.Shutdown(context.Background())

	for {
		msg, err := sub.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("receive message failed: %w", err)
		}

		t, err := decode(msg)
		msg.Ack()
		if err != nil {
			slog.Warn("malformed message received", "node", msg.Metadata["node"], "err", err)
			continue
		}
		slog.Debug("broadcast received", "topic", t.Topic, "event", t.Msg.T, "node", msg.Metadata["node"])
		p.Receive(t.Topic, t.Msg)
	}
}

// Close the topic.
func (c *Cloud) Close(ctx context.Context) error {
	return c.topic.Shutdown(ctx)
}

func encode(node, topic string, msg live.Event) (*pubsub.Message, error) {
	data, err := json.Marshal(live.TransportMessage{Topic: topic, Msg: msg})
	if err != nil {
		return nil, fmt.Errorf("could not publish event: %w", err)
	}
	return &pubsub.Message{
		Body: data,
		Metadata: map[string]string{
			"topic": topic,
			"node":  node,
		},
	}, nil
}

// ErrEmptyMessage returned when a message carries no body.
var ErrEmptyMessage = errors.New("empty message")

func decode(msg *pubsub.Message) (live.TransportMessage, error) {
	var t live.TransportMessage
	if len(msg.Body) == 0 {
		return t, ErrEmptyMessage
	}
	if err := json.Unmarshal(msg.Body, &t); err != nil {
		return t, fmt.Errorf("could not decode message: %w", err)
	}
	return t, nil
}
