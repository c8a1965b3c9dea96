// Package authz resolves reviewer authorization against the employee
// registry.
package authz

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
)

// EmployeeAuthorizer implements port.Authorizer over the employees table
type EmployeeAuthorizer struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmployeeAuthorizer creates a new employee-registry authorizer
func NewEmployeeAuthorizer(db *sql.DB, logger *zap.Logger) *EmployeeAuthorizer {
	return &EmployeeAuthorizer{db: db, logger: logger}
}

// HasVerifierCapability reports whether the actor carries the expense
// verifier capability. Unknown actors are not verifiers.
func (a *EmployeeAuthorizer) HasVerifierCapability(ctx context.Context, actorID string) (bool, error) {
	var isVerifier bool
	err := a.db.QueryRowContext(ctx,
		`SELECT is_verifier FROM employees WHERE id = ?`, actorID,
	).Scan(&isVerifier)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		a.logger.Error("Failed to resolve verifier capability",
			zap.String("actor_id", actorID), zap.Error(err))
		return false, fmt.Errorf("resolve verifier capability: %w", err)
	}
	return isVerifier, nil
}

// IsUnitHeadOf reports whether the actor heads the unit the owner belongs
// to. Unknown owners have no unit head.
func (a *EmployeeAuthorizer) IsUnitHeadOf(ctx context.Context, actorID, ownerID string) (bool, error) {
	var unitHeadID sql.NullString
	err := a.db.QueryRowContext(ctx,
		`SELECT unit_head_id FROM employees WHERE id = ?`, ownerID,
	).Scan(&unitHeadID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		a.logger.Error("Failed to resolve unit head",
			zap.String("owner_id", ownerID), zap.Error(err))
		return false, fmt.Errorf("resolve unit head: %w", err)
	}
	return unitHeadID.Valid && unitHeadID.String == actorID, nil
}

var _ port.Authorizer = (*EmployeeAuthorizer)(nil)
