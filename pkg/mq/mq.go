// Package mq is the outbound event seam. The service publishes a message per
// task mutation; swap the publisher for a real broker client when needed.
package mq

import "log"

type Publisher interface {
	Publish(topic string, payload []byte) error
}

type Noop struct{}

func (Noop) Publish(topic string, payload []byte) error { return nil }

// LogPublisher writes each event to the service log. It is the default
// publisher when serving, so mutation traffic is observable without a broker.
type LogPublisher struct {
	Log *log.Logger
}

func (p LogPublisher) Publish(topic string, payload []byte) error {
	p.Log.Printf("event %s %s", topic, payload)
	return nil
}
