package ballot

import (
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/proof"
)

// CiphertextBallotSelection is one encrypted selection: a real vote or an
// inserted placeholder, indistinguishable from the outside.
//
// Grounded on original_source/ballot.py's CyphertextBallotSelection.
type CiphertextBallotSelection struct {
	ObjectID        string
	DescriptionHash group.ElementModQ
	Ciphertext      elgamal.Ciphertext
	Proof           proof.DisjunctiveChaumPedersenProof
	IsPlaceholder   bool
	Nonce           group.ElementModQ
}

// CryptoHash is hash_elems(seed_hash, ciphertext_hash), per
// CyphertextBallotSelection.crypto_hash_with.
func (s CiphertextBallotSelection) CryptoHash() group.ElementModQ {
	return ghash.Elems(s.DescriptionHash, s.Ciphertext)
}

// IsValidEncryption re-checks this selection's disjunctive proof against
// its own ciphertext.
func (s CiphertextBallotSelection) IsValidEncryption(k group.ElementModP, extendedBaseHash group.ElementModQ) bool {
	return s.Proof.IsValid(s.Ciphertext, k, extendedBaseHash)
}

// CiphertextBallotContest is one encrypted contest: every real and
// placeholder selection, their homomorphic sum, and a constant-CP proof
// that the sum equals the contest's selection limit.
//
// Grounded on original_source/ballot.py's CyphertextBallotContest.
type CiphertextBallotContest struct {
	ObjectID        string
	DescriptionHash group.ElementModQ
	Selections      []CiphertextBallotSelection
	EncryptedTotal  elgamal.Ciphertext
	Proof           proof.ConstantChaumPedersenProof
	Nonce           group.ElementModQ
}

// CryptoHash is hash_elems(description_hash, selection_hashes...).
func (c CiphertextBallotContest) CryptoHash() group.ElementModQ {
	args := []interface{}{c.DescriptionHash}
	for _, s := range c.Selections {
		args = append(args, s.CryptoHash())
	}
	return ghash.Elems(args...)
}

// IsValidEncryption re-checks this contest's constant-sum proof against
// its own accumulated ciphertext.
func (c CiphertextBallotContest) IsValidEncryption(k group.ElementModP, extendedBaseHash group.ElementModQ) bool {
	return c.Proof.IsValid(c.EncryptedTotal, k, extendedBaseHash)
}

// CiphertextBallot is a fully encrypted ballot prior to a cast/spoil
// decision.
//
// Grounded on original_source/ballot.py's CyphertextBallot.
type CiphertextBallot struct {
	BallotID     string
	StyleID      string
	ManifestHash group.ElementModQ
	DeviceSeed   group.ElementModQ
	Contests     []CiphertextBallotContest
}

// CryptoHash is H(ballot_style_id, manifest_hash, H(contest_hashes...)),
// the ballot hash chain formula spec.md §4.7 pins (diverging from the
// original's hash_elems(seed_hash, *contest_hashes) by naming the
// manifest hash explicitly rather than folding it into a seed_hash
// parameter).
func (b CiphertextBallot) CryptoHash() group.ElementModQ {
	contestArgs := make([]interface{}, len(b.Contests))
	for i, c := range b.Contests {
		contestArgs[i] = c.CryptoHash()
	}
	return ghash.Elems(b.StyleID, b.ManifestHash, ghash.Elems(contestArgs...))
}

// IsValidEncryption re-checks every contest and selection proof against
// the public key and extended base hash used at encryption time.
func (b CiphertextBallot) IsValidEncryption(k group.ElementModP, extendedBaseHash group.ElementModQ) bool {
	for _, c := range b.Contests {
		if !c.IsValidEncryption(k, extendedBaseHash) {
			return false
		}
		for _, s := range c.Selections {
			if !s.IsValidEncryption(k, extendedBaseHash) {
				return false
			}
		}
	}
	return true
}
