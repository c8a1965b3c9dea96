// Package eventlog writes lifecycle events to the structured log, giving
// reviewers and operators an audit trail without a message broker.
package eventlog

import (
	"context"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/event"
)

// Publisher implements port.EventPublisher over zap
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a new log-backed event publisher
func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Publish records the event. Publishing never fails the surrounding
// operation; a malformed event is logged and dropped.
func (p *Publisher) Publish(ctx context.Context, e *event.Event) {
	if !e.Type.IsValid() {
		p.logger.Warn("Dropping event of unknown type", zap.String("type", e.Type.String()))
		return
	}
	p.logger.Info("Lifecycle event",
		zap.String("event_id", e.ID),
		zap.String("type", e.Type.String()),
		zap.String("report_id", e.ReportID),
		zap.String("actor_id", e.ActorID),
		zap.Any("payload", e.Payload),
		zap.Time("timestamp", e.Timestamp))
}

var _ port.EventPublisher = (*Publisher)(nil)
