package decryption

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/keyceremony"
	"github.com/Election-Tech-Initiative/electionguard-go/polynomial"
)

// GuardianPublicInfo is the public record decryption checks shares
// against: the same material published during the Key Ceremony
// (keyceremony.GuardianPublicKey), keyed here by sequence order for
// convenient lookup during reconstruction.
type GuardianPublicInfo struct {
	ID            keyceremony.GuardianID
	SequenceOrder int
	PublicKey     elgamal.PublicKey
	Commitments   []polynomial.PublicCommitment
}

// MissingGuardian names a guardian absent from this decryption along
// with the compensated shares present guardians computed on its behalf.
type MissingGuardian struct {
	SequenceOrder int
	Compensated   []CompensatedDecryptionShare
}

// DecryptCiphertext recovers the plaintext behind ciphertext c using
// direct decryption shares from present guardians and, for any missing
// guardian, Lagrange-reconstructed compensated shares (spec.md §4.9).
//
// Every share is verified before being combined; an invalid direct share
// drops that guardian from the present set. If fewer than quorum valid
// direct shares remain, decryption refuses with egerror.ErrQuorumUnmet.
// ceiling bounds the discrete-log recovery (normally the tally's cast
// ballot count).
func DecryptCiphertext(
	c elgamal.Ciphertext,
	shares []DecryptionShare,
	missing []MissingGuardian,
	guardians map[int]GuardianPublicInfo,
	quorum int,
	extendedBaseHash group.ElementModQ,
	ceiling int,
) (int, error) {
	valid := make(map[int]DecryptionShare)
	for _, share := range shares {
		info, known := guardians[share.SequenceOrder]
		if !known {
			continue
		}
		if VerifyShare(share, c, info.PublicKey, extendedBaseHash) {
			valid[share.SequenceOrder] = share
		}
	}
	if len(valid) < quorum {
		return 0, fmt.Errorf("decryption: only %d of %d quorum direct shares verified: %w", len(valid), quorum, egerror.ErrQuorumUnmet)
	}

	present := make([]int, 0, len(valid))
	factors := make([]group.ElementModP, 0, len(valid)+len(missing))
	for order, share := range valid {
		present = append(present, order)
		factors = append(factors, share.Share)
	}

	for _, m := range missing {
		verified := make([]CompensatedDecryptionShare, 0, len(m.Compensated))
		for _, cshare := range m.Compensated {
			info, known := guardians[cshare.CompensatingSequenceOrder]
			if !known {
				continue
			}
			if _, stillPresent := valid[cshare.CompensatingSequenceOrder]; !stillPresent {
				continue
			}
			if VerifyCompensatedShare(cshare, c, info.Commitments, extendedBaseHash) {
				verified = append(verified, cshare)
			}
		}
		if len(verified) != len(present) {
			return 0, fmt.Errorf("decryption: missing guardian %d reconstruction incomplete (%d of %d present guardians contributed): %w", m.SequenceOrder, len(verified), len(present), egerror.ErrProofVerificationFailed)
		}
		reconstructed, err := ReconstructMissingShare(verified, present)
		if err != nil {
			return 0, err
		}
		factors = append(factors, reconstructed)
	}

	combined := group.MultP(factors...)
	inv, err := group.MultInvP(combined)
	if err != nil {
		return 0, fmt.Errorf("decryption: inverting combined share: %w", err)
	}
	gToT := group.MultP(c.Data, inv)
	t, err := elgamal.DiscreteLogBounded(gToT, ceiling)
	if err != nil {
		return 0, fmt.Errorf("decryption: recovering plaintext: %w", err)
	}
	return t, nil
}

// BatchResult is one ciphertext's decrypted value or the error that
// prevented it, keyed by a caller-chosen label (e.g. "contest/selection").
type BatchResult struct {
	Label     string
	Plaintext int
	Err       error
}

// DecryptBatch decrypts every labeled ciphertext independently. A
// failure on one ciphertext (a bad proof, an exhausted discrete-log
// search) is recorded in that entry's BatchResult and never aborts the
// rest of the batch (spec.md §9 "partial failure").
func DecryptBatch(
	ciphertexts map[string]elgamal.Ciphertext,
	sharesByLabel map[string][]DecryptionShare,
	missingByLabel map[string][]MissingGuardian,
	guardians map[int]GuardianPublicInfo,
	quorum int,
	extendedBaseHash group.ElementModQ,
	ceiling int,
) []BatchResult {
	results := make([]BatchResult, 0, len(ciphertexts))
	for label, c := range ciphertexts {
		plaintext, err := DecryptCiphertext(c, sharesByLabel[label], missingByLabel[label], guardians, quorum, extendedBaseHash, ceiling)
		if err != nil {
			log.Lvlf2("decryption: %s failed: %v", label, err)
		}
		results = append(results, BatchResult{Label: label, Plaintext: plaintext, Err: err})
	}
	return results
}
