package port

import (
	"context"

	"github.com/adiwidodo/perjadin/internal/domain/event"
)

// Authorizer answers the role questions that gate reviewer actions. The
// engine never resolves identity itself; the surrounding system implements
// this against its user directory.
type Authorizer interface {
	// HasVerifierCapability reports whether the actor may review as the
	// commitment officer
	HasVerifierCapability(ctx context.Context, actorID string) (bool, error)

	// IsUnitHeadOf reports whether the actor heads the organizational unit
	// of the given report owner
	IsUnitHeadOf(ctx context.Context, actorID, ownerID string) (bool, error)
}

// EventPublisher receives lifecycle events after their operation has
// committed. Publishing is fire-and-forget; it must not fail the operation.
type EventPublisher interface {
	Publish(ctx context.Context, e *event.Event)
}
