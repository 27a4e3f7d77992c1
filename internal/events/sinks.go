package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	ws "github.com/gokatarajesh/timerift/pkg/http/ws"
)

// HubSink broadcasts events to connected websocket clients.
type HubSink struct {
	hub *ws.Hub
}

func NewHubSink(hub *ws.Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) Name() string { return "ws_hub" }

func (s *HubSink) Handle(_ context.Context, evt Event) error {
	msg, err := ws.NewMessage(string(evt.Kind), evt)
	if err != nil {
		return fmt.Errorf("encode ws message: %w", err)
	}
	return s.hub.BroadcastAll(msg)
}

// RedisSink publishes events as JSON on a Pub/Sub channel for out-of-process consumers.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	if channel == "" {
		channel = "timerift:events"
	}
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Name() string { return "redis_pubsub" }

func (s *RedisSink) Handle(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return s.client.Publish(ctx, s.channel, data).Err()
}

// MetricsSink turns events into Prometheus series.
type MetricsSink struct {
	answers      *prometheus.CounterVec
	sessions     prometheus.Counter
	sessionScore prometheus.Histogram
	levelUps     prometheus.Counter
	achievements *prometheus.CounterVec
}

// NewMetricsSink registers collectors on reg.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	s := &MetricsSink{
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timerift",
			Name:      "answers_total",
			Help:      "Submitted answers by outcome.",
		}, []string{"outcome"}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timerift",
			Name:      "sessions_completed_total",
			Help:      "Sessions that ended with health exhausted.",
		}),
		sessionScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "timerift",
			Name:      "session_score",
			Help:      "Final score of completed sessions.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 10),
		}),
		levelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timerift",
			Name:      "level_ups_total",
			Help:      "Sessions that raised the player level.",
		}),
		achievements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timerift",
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked by id.",
		}, []string{"achievement"}),
	}

	for _, c := range []prometheus.Collector{s.answers, s.sessions, s.sessionScore, s.levelUps, s.achievements} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return s, nil
}

func (s *MetricsSink) Name() string { return "metrics" }

func (s *MetricsSink) Handle(_ context.Context, evt Event) error {
	switch evt.Kind {
	case KindCorrect, KindWrong, KindTimeout:
		s.answers.WithLabelValues(string(evt.Kind)).Inc()
	case KindGameOver:
		s.sessions.Inc()
		if evt.Stats != nil {
			s.sessionScore.Observe(float64(evt.Stats.Score))
		}
	case KindLevelUp:
		s.levelUps.Inc()
	case KindAchievement:
		if evt.Achievement != nil {
			s.achievements.WithLabelValues(evt.Achievement.ID).Inc()
		}
	}
	return nil
}
