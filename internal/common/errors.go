// Package common defines shared constants and sentinel errors used across
// teamkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
	ErrorOffline  = errors.New("remote unreachable")

	// Validation errors surfaced by the facade.
	ErrorEmailRequired  = errors.New("member email is required")
	ErrorNameRequired   = errors.New("team name is required")
	ErrorUnknownTable   = errors.New("unknown table")
	ErrorUnknownOp      = errors.New("unknown queue operation")
	ErrorTeamNotFound   = errors.New("team not found")
	ErrorMemberNotFound = errors.New("member not found")
)
