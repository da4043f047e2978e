// Package egerror defines the error kinds a caller can expect back from any
// component in this module. Every validation failure on adversarial input is
// one of these sentinels, wrapped with context via fmt.Errorf("...: %w", ...).
// None of them is ever swallowed internally.
package egerror

import "errors"

// Sentinel error kinds, one per spec.md §7 entry.
var (
	ErrInvalidElement          = errors.New("invalid element")
	ErrSubgroupViolation       = errors.New("subgroup violation")
	ErrWeakSecret              = errors.New("weak secret")
	ErrBadNonce                = errors.New("bad nonce")
	ErrUnknownSelection        = errors.New("unknown selection")
	ErrOverVote                = errors.New("over vote")
	ErrWrongStyle              = errors.New("wrong ballot style")
	ErrProofVerificationFailed = errors.New("proof verification failed")
	ErrBackupVerificationFail  = errors.New("backup verification failed")
	ErrDuplicateSequenceOrder  = errors.New("duplicate sequence order")
	ErrDuplicateGuardianID     = errors.New("duplicate guardian id")
	ErrQuorumUnmet             = errors.New("quorum unmet")
	ErrDuplicateBallot         = errors.New("duplicate ballot")
	ErrTallyOutOfRange         = errors.New("tally out of range")
	ErrInvariantViolation      = errors.New("invariant violation")
)
