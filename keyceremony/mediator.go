package keyceremony

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
)

// Mediator is the logical, trust-minimized conduit described in spec.md
// §4.6: it holds no private guardian material, only public records, and
// detects when each completion threshold is reached.
//
// Grounded on
// _examples/original_source/src/electionguard/key_ceremony_mediator.py.
type Mediator struct {
	details        CeremonyDetails
	publicKeys     map[GuardianID]GuardianPublicKey
	backups        map[backupKey]ElectionPartialKeyBackup
	verifications  map[backupKey]ElectionPartialKeyVerification
	evicted        map[GuardianID]bool
}

type backupKey struct {
	owner      GuardianID
	designated GuardianID
}

// NewMediator starts an empty mediator for the given ceremony size.
func NewMediator(details CeremonyDetails) *Mediator {
	return &Mediator{
		details:       details,
		publicKeys:    make(map[GuardianID]GuardianPublicKey),
		backups:       make(map[backupKey]ElectionPartialKeyBackup),
		verifications: make(map[backupKey]ElectionPartialKeyVerification),
		evicted:       make(map[GuardianID]bool),
	}
}

// ReceivePublicKey records a guardian's public record, rejecting a
// duplicate sequence order or guardian id (spec.md §4.6 "Failure
// semantics"). A guardian whose Schnorr proofs fail to verify is
// evicted immediately.
func (m *Mediator) ReceivePublicKey(key GuardianPublicKey) error {
	if _, exists := m.publicKeys[key.OwnerID]; exists {
		return fmt.Errorf("keyceremony: duplicate guardian id %s: %w", key.OwnerID, egerror.ErrDuplicateGuardianID)
	}
	for _, existing := range m.publicKeys {
		if existing.SequenceOrder == key.SequenceOrder {
			return fmt.Errorf("keyceremony: duplicate sequence order %d: %w", key.SequenceOrder, egerror.ErrDuplicateSequenceOrder)
		}
	}
	if !key.VerifySchnorrProofs() {
		log.Lvlf2("keyceremony: guardian %s failed schnorr verification, evicting", key.OwnerID)
		m.evicted[key.OwnerID] = true
		return fmt.Errorf("keyceremony: guardian %s schnorr proof invalid: %w", key.OwnerID, egerror.ErrProofVerificationFailed)
	}
	m.publicKeys[key.OwnerID] = key
	return nil
}

// AllPublicKeysReceived reports whether every non-evicted guardian slot
// has published a valid public key.
func (m *Mediator) AllPublicKeysReceived() bool {
	evicted := 0
	for _, e := range m.evicted {
		if e {
			evicted++
		}
	}
	published := 0
	for id := range m.publicKeys {
		if !m.evicted[id] {
			published++
		}
	}
	return published == m.details.NumberOfGuardians-evicted
}

// GuardianPublicKeys returns every received public key, keyed by id.
func (m *Mediator) GuardianPublicKeys() map[GuardianID]GuardianPublicKey {
	return m.publicKeys
}

// ReceiveBackup records a backup sent from owner to its designated
// recipient.
func (m *Mediator) ReceiveBackup(backup ElectionPartialKeyBackup) {
	m.backups[backupKey{owner: backup.OwnerID, designated: backup.DesignatedID}] = backup
}

// AllBackupsDistributed reports whether every ordered pair of
// non-evicted guardians has exchanged a backup.
func (m *Mediator) AllBackupsDistributed() bool {
	expected := 0
	for id := range m.publicKeys {
		if !m.evicted[id] {
			expected++
		}
	}
	expectedPairs := expected * (expected - 1)
	count := 0
	for k := range m.backups {
		if !m.evicted[k.owner] && !m.evicted[k.designated] {
			count++
		}
	}
	return count >= expectedPairs
}

// ReceiveVerification records a recipient's judgment of a backup. A
// failed verification moves neither party's state here; the caller
// drives the Disputed transition via GuardianCeremonyState.
func (m *Mediator) ReceiveVerification(v ElectionPartialKeyVerification) {
	m.verifications[backupKey{owner: v.OwnerID, designated: v.DesignatedID}] = v
}

// ReceiveChallengeVerification records an independent re-verification of
// a challenge's plaintext reveal, overwriting any prior failed
// verification for that pair (spec.md §4.6 step 5: success -> proceed).
func (m *Mediator) ReceiveChallengeVerification(v ElectionPartialKeyVerification) {
	m.verifications[backupKey{owner: v.OwnerID, designated: v.DesignatedID}] = v
}

// AllBackupsVerified reports whether at least one verification has been
// recorded and every recorded verification between non-evicted guardians
// succeeded.
func (m *Mediator) AllBackupsVerified() bool {
	if len(m.verifications) == 0 {
		return false
	}
	for k, v := range m.verifications {
		if m.evicted[k.owner] || m.evicted[k.designated] {
			continue
		}
		if !v.Verified {
			return false
		}
	}
	return true
}

// Evict marks a guardian as evicted. An evicted guardian's pending
// backups and verifications are excluded from the completion checks
// above, and it never contributes to the joint key.
func (m *Mediator) Evict(id GuardianID) {
	m.evicted[id] = true
}

// IsEvicted reports whether id has been evicted from the ceremony.
func (m *Mediator) IsEvicted(id GuardianID) bool {
	return m.evicted[id]
}

// PublishJointKey combines every non-evicted guardian's public key once
// AllBackupsVerified is true. It fails with egerror.ErrQuorumUnmet if
// fewer than Quorum guardians remain.
func (m *Mediator) PublishJointKey() (ElectionKey, error) {
	if !m.AllBackupsVerified() {
		return ElectionKey{}, fmt.Errorf("keyceremony: backups not yet verified: %w", egerror.ErrInvariantViolation)
	}
	var remaining []GuardianPublicKey
	for id, key := range m.publicKeys {
		if !m.evicted[id] {
			remaining = append(remaining, key)
		}
	}
	if len(remaining) < m.details.Quorum {
		return ElectionKey{}, fmt.Errorf("keyceremony: only %d of %d quorum guardians remain: %w", len(remaining), m.details.Quorum, egerror.ErrQuorumUnmet)
	}
	return CreateElectionKey(remaining), nil
}
