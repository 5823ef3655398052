// Package policy holds the pure access-control predicates. Each predicate
// takes the acting user (nil for anonymous requests) and returns nil on
// allow, or one of the two deny reasons.
package policy

import (
	"errors"

	"github.com/evalboard/evalboard/internal/domain"
)

// ErrUnauthenticated denies a request that carries no valid session.
var ErrUnauthenticated = errors.New("policy: unauthenticated")

// ErrUnauthorized denies a request from a valid session with the wrong role
// or ownership.
var ErrUnauthorized = errors.New("policy: unauthorized")

// CanReadOwnProfile requires any authenticated actor.
func CanReadOwnProfile(actor *domain.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	return nil
}

// CanListOwnEvaluations requires an authenticated student. Callers must scope
// the listing to the actor's own records.
func CanListOwnEvaluations(actor *domain.User) error {
	return requireRole(actor, domain.RoleStudent)
}

// CanCreateEvaluation requires an authenticated student. The server assigns
// the new record's student id from the actor, never from the payload.
func CanCreateEvaluation(actor *domain.User) error {
	return requireRole(actor, domain.RoleStudent)
}

// CanReadLecturerSummary requires an authenticated lecturer. Summaries are
// computed only over the actor's own records.
func CanReadLecturerSummary(actor *domain.User) error {
	return requireRole(actor, domain.RoleLecturer)
}

func requireRole(actor *domain.User, role string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.Role != role {
		return ErrUnauthorized
	}
	return nil
}
