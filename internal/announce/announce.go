// Package announce mirrors milestone annotations and session changes to an
// MQTT broker so other displays can follow the roast.
package announce

import (
	"context"
	"time"

	"roast_monitor/internal/logger"
	"roast_monitor/internal/models"

	"github.com/goccy/go-json"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "roast_monitor"

const queueSize = 64

// Publisher sends one message to the broker.
type Publisher interface {
	Publish(topic string, payload []byte, retained bool) error
	Close() error
}

// MilestonePayload is published on <prefix>/milestones.
type MilestonePayload struct {
	Milestone MilestoneInner `json:"milestone"`
}

type MilestoneInner struct {
	Timestamp string  `json:"timestamp"`
	RoastID   string  `json:"roast_id"`
	Kind      string  `json:"kind"`
	Label     string  `json:"label"`
	Detail    string  `json:"detail"`
	X         float64 `json:"x"`
}

// SessionPayload is published (retained) on <prefix>/session.
type SessionPayload struct {
	Session SessionInner `json:"session"`
}

type SessionInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"` // "title" or "cleared"
	Title     string `json:"title,omitempty"`
	Subtitle  string `json:"subtitle,omitempty"`
}

type message struct {
	topic    string
	payload  []byte
	retained bool
}

// Announcer implements the synchronizer's Renderer. Calls never block: the
// messages are queued and published by Run.
type Announcer struct {
	pub    Publisher
	prefix string
	log    *logger.Logger
	now    func() time.Time
	queue  chan message
}

// New returns an Announcer publishing through pub under prefix.
func New(pub Publisher, prefix string, log *logger.Logger) *Announcer {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Announcer{
		pub:    pub,
		prefix: prefix,
		log:    log,
		now:    time.Now,
		queue:  make(chan message, queueSize),
	}
}

// MilestoneTopic is where annotations go.
func (a *Announcer) MilestoneTopic() string { return a.prefix + "/milestones" }

// SessionTopic is where title changes and clears go.
func (a *Announcer) SessionTopic() string { return a.prefix + "/session" }

// AppendPoint is a no-op; samples are not announced.
func (a *Announcer) AppendPoint(string, models.Point) {}

// AppendAnnotation queues a milestone message.
func (a *Announcer) AppendAnnotation(_ string, ann models.Annotation) {
	a.enqueue(a.MilestoneTopic(), FormatMilestone(ann, a.now()), false)
}

// SetTitle queues a retained title message.
func (a *Announcer) SetTitle(text, subtitle string) {
	a.enqueue(a.SessionTopic(), formatSession(SessionInner{
		Timestamp: a.now().UTC().Format(time.RFC3339),
		Event:     "title",
		Title:     text,
		Subtitle:  subtitle,
	}), true)
}

// Clear queues a retained session-cleared message.
func (a *Announcer) Clear() {
	a.enqueue(a.SessionTopic(), formatSession(SessionInner{
		Timestamp: a.now().UTC().Format(time.RFC3339),
		Event:     "cleared",
	}), true)
}

func (a *Announcer) enqueue(topic string, payload []byte, retained bool) {
	if payload == nil {
		return
	}
	select {
	case a.queue <- message{topic: topic, payload: payload, retained: retained}:
	default:
		a.log.Warnw("announce_queue_full", "topic", topic)
	}
}

// Run publishes queued messages until ctx is done, then closes the publisher.
func (a *Announcer) Run(ctx context.Context) {
	defer func() {
		if err := a.pub.Close(); err != nil {
			a.log.Warnw("announce_close_failed", "err", err)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-a.queue:
			if err := a.pub.Publish(m.topic, m.payload, m.retained); err != nil {
				a.log.Warnw("announce_publish_failed", "topic", m.topic, "err", err)
			}
		}
	}
}

// FormatMilestone renders the payload for one annotation.
func FormatMilestone(ann models.Annotation, at time.Time) []byte {
	b, _ := json.Marshal(MilestonePayload{Milestone: MilestoneInner{
		Timestamp: at.UTC().Format(time.RFC3339),
		RoastID:   ann.RoastID,
		Kind:      string(ann.Kind),
		Label:     ann.Label,
		Detail:    ann.Detail,
		X:         ann.X,
	}})
	return b
}

func formatSession(s SessionInner) []byte {
	b, _ := json.Marshal(SessionPayload{Session: s})
	return b
}
