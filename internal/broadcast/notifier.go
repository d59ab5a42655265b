// Package broadcast tells connected clients which cached queries a committed
// change invalidated.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/weddingplanner-backend/pkg/config"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/metrics"
)

const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"

	defaultPublishTimeout = 2 * time.Second
)

// Message is the payload published after a change commits.
type Message struct {
	Type            string   `json:"type"`
	Module          string   `json:"module"`
	EntityID        string   `json:"entityId"`
	CompanyID       string   `json:"companyId"`
	AffectedQueries []string `json:"affectedQueries,omitempty"`
}

// Notifier publishes change messages. Implementations never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) (int64, error)
	BroadcastChannel(companyID string) string
}

// Noop drops every message.
type Noop struct{}

func (Noop) Notify(context.Context, Message) {}

// RedisNotifier publishes messages on the company's broadcast channel.
type RedisNotifier struct {
	pub     publisher
	timeout time.Duration
	logg    *logger.Logger
	metrics *metrics.LifecycleMetrics
}

// New returns a Redis-backed notifier, or Noop when broadcasting is disabled
// or no publisher is available.
func New(cfg config.BroadcastConfig, pub publisher, logg *logger.Logger, m *metrics.LifecycleMetrics) (Notifier, error) {
	if !cfg.Enabled || pub == nil {
		return Noop{}, nil
	}
	return NewRedisNotifier(pub, cfg.PublishTimeout, logg, m)
}

// NewRedisNotifier wires a notifier over pub.
func NewRedisNotifier(pub publisher, timeout time.Duration, logg *logger.Logger, m *metrics.LifecycleMetrics) (*RedisNotifier, error) {
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &RedisNotifier{pub: pub, timeout: timeout, logg: logg, metrics: m}, nil
}

// Notify publishes msg within the configured timeout. The caller's
// cancellation does not abort the publish; failures are logged and dropped.
func (n *RedisNotifier) Notify(ctx context.Context, msg Message) {
	logCtx := n.logg.WithFields(ctx, map[string]any{
		"broadcast_type":   msg.Type,
		"broadcast_module": msg.Module,
		"entity_id":        msg.EntityID,
	})
	if msg.CompanyID == "" {
		n.logg.Warn(logCtx, "broadcast skipped: message has no company")
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		n.fail(logCtx, "broadcast encode failed", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if _, err := n.pub.Publish(pubCtx, n.pub.BroadcastChannel(msg.CompanyID), payload); err != nil {
		n.fail(logCtx, "broadcast publish failed", err)
		return
	}
	n.logg.Debug(logCtx, "broadcast published")
}

func (n *RedisNotifier) fail(ctx context.Context, msg string, err error) {
	n.metrics.IncStepFailure("broadcast")
	n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), msg)
}
