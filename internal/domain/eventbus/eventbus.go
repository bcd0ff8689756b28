// Package eventbus carries pipeline telemetry events. The bus is injected
// rather than package-global so concurrent requests and tests never share
// mutable state.
package eventbus

import (
	"time"

	evbus "github.com/asaskevich/EventBus"
)

const (
	TopicImageRejected  = "image.rejected"
	TopicMatchCompleted = "match.completed"
)

// ImageRejected is published when an untrusted image is turned away at any
// pipeline stage.
type ImageRejected struct {
	URL    string
	Kind   string
	Reason string
}

// MatchCompleted is published after a full match run.
type MatchCompleted struct {
	URL      string
	Colors   []string
	Duration time.Duration
}

type Bus struct {
	inner evbus.Bus
}

func New() *Bus {
	return &Bus{inner: evbus.New()}
}

func (b *Bus) PublishImageRejected(ev ImageRejected) {
	b.inner.Publish(TopicImageRejected, ev)
}

func (b *Bus) PublishMatchCompleted(ev MatchCompleted) {
	b.inner.Publish(TopicMatchCompleted, ev)
}

func (b *Bus) SubscribeImageRejected(fn func(ImageRejected)) error {
	return b.inner.SubscribeAsync(TopicImageRejected, fn, false)
}

func (b *Bus) SubscribeMatchCompleted(fn func(MatchCompleted)) error {
	return b.inner.SubscribeAsync(TopicMatchCompleted, fn, false)
}

// Wait blocks until all in-flight async handlers have finished.
func (b *Bus) Wait() {
	b.inner.WaitAsync()
}
