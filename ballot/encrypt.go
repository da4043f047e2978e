package ballot

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
	"github.com/Election-Tech-Initiative/electionguard-go/proof"
)

// Encrypt turns a plaintext ballot into a CiphertextBallot under the
// joint public key k and extended base hash, inserting placeholders so
// every contest's real-plus-placeholder selections sum to its selection
// limit (spec.md §4.7).
//
// Every encryption nonce derives deterministically from deviceSeed and
// the relevant description hash, so re-encrypting the same ballot with
// the same deviceSeed reproduces the identical ciphertext bit-for-bit.
//
// Grounded on original_source/encrypt.py's encrypt_ballot / encrypt_contest /
// encrypt_selection, adapted to spec.md §4.7's r_s = H(h_s, ω, ballot_id)
// nonce formula in place of the original's indexed Nonces(seed)[i] scheme.
func Encrypt(b PlaintextBallot, manifest Manifest, k elgamal.PublicKey, extendedBaseHash, deviceSeed group.ElementModQ) (CiphertextBallot, error) {
	if b.StyleID != manifest.BallotStyleID {
		return CiphertextBallot{}, fmt.Errorf("ballot: style %s does not match manifest style %s: %w", b.StyleID, manifest.BallotStyleID, egerror.ErrWrongStyle)
	}

	ballotID := b.ObjectID
	if ballotID == "" {
		ballotID = uuid.NewV4().String()
	}

	encryptedContests := make([]CiphertextBallotContest, 0, len(b.Contests))
	for _, contest := range b.Contests {
		description, ok := manifest.ContestByID(contest.ObjectID)
		if !ok {
			return CiphertextBallot{}, fmt.Errorf("ballot: contest %s not in manifest: %w", contest.ObjectID, egerror.ErrUnknownSelection)
		}
		encryptedContest, err := encryptContest(contest, description, ballotID, k, extendedBaseHash, deviceSeed)
		if err != nil {
			return CiphertextBallot{}, err
		}
		encryptedContests = append(encryptedContests, encryptedContest)
	}

	log.Lvlf3("ballot: encrypted ballot %s style %s with %d contests", ballotID, b.StyleID, len(encryptedContests))

	return CiphertextBallot{
		BallotID:     ballotID,
		StyleID:      b.StyleID,
		ManifestHash: manifest.CryptoHash(),
		DeviceSeed:   deviceSeed,
		Contests:     encryptedContests,
	}, nil
}

func encryptContest(contest PlaintextBallotContest, description ContestDescription, ballotID string, k elgamal.PublicKey, extendedBaseHash, deviceSeed group.ElementModQ) (CiphertextBallotContest, error) {
	votes := make(map[string]int, len(contest.Selections))
	sum := 0
	for _, s := range contest.Selections {
		if _, known := findSelection(description, s.ObjectID); !known {
			return CiphertextBallotContest{}, fmt.Errorf("ballot: selection %s not in contest %s: %w", s.ObjectID, description.ObjectID, egerror.ErrUnknownSelection)
		}
		votes[s.ObjectID] = s.Vote
		sum += s.Vote
	}
	if sum > description.SelectionLimit {
		return CiphertextBallotContest{}, fmt.Errorf("ballot: contest %s selects %d of limit %d: %w", description.ObjectID, sum, description.SelectionLimit, egerror.ErrOverVote)
	}

	descriptionHash := description.CryptoHash()
	encrypted := make([]CiphertextBallotSelection, 0, len(description.Selections)+description.SelectionLimit)
	nonces := make([]group.ElementModQ, 0, len(description.Selections)+description.SelectionLimit)
	ciphertexts := make([]elgamal.Ciphertext, 0, len(description.Selections)+description.SelectionLimit)

	for _, sd := range description.Selections {
		vote := votes[sd.ObjectID]
		enc, err := encryptSelection(sd.ObjectID, sd.CryptoHash(), vote, false, ballotID, k, extendedBaseHash, deviceSeed)
		if err != nil {
			return CiphertextBallotContest{}, err
		}
		encrypted = append(encrypted, enc)
		nonces = append(nonces, enc.Nonce)
		ciphertexts = append(ciphertexts, enc.Ciphertext)
	}

	remaining := description.SelectionLimit - sum
	for i := 0; i < description.SelectionLimit; i++ {
		placeholderID := fmt.Sprintf("%s-placeholder-%d", description.ObjectID, i)
		placeholderHash := ghash.Elems(description.ObjectID, "placeholder", i)
		vote := 0
		if i < remaining {
			vote = 1
		}
		enc, err := encryptSelection(placeholderID, placeholderHash, vote, true, ballotID, k, extendedBaseHash, deviceSeed)
		if err != nil {
			return CiphertextBallotContest{}, err
		}
		encrypted = append(encrypted, enc)
		nonces = append(nonces, enc.Nonce)
		ciphertexts = append(ciphertexts, enc.Ciphertext)
	}

	total, err := elgamal.Add(ciphertexts...)
	if err != nil {
		return CiphertextBallotContest{}, fmt.Errorf("ballot: accumulating contest %s: %w", description.ObjectID, err)
	}
	totalNonce := group.AddQ(nonces...)
	contestProofSeed := ghash.Elems(descriptionHash, deviceSeed, ballotID)
	contestProof := proof.MakeConstantChaumPedersen(total, description.SelectionLimit, totalNonce, k, contestProofSeed, extendedBaseHash)

	return CiphertextBallotContest{
		ObjectID:        description.ObjectID,
		DescriptionHash: descriptionHash,
		Selections:      encrypted,
		EncryptedTotal:  total,
		Proof:           contestProof,
		Nonce:           totalNonce,
	}, nil
}

func encryptSelection(objectID string, descriptionHash group.ElementModQ, vote int, isPlaceholder bool, ballotID string, k elgamal.PublicKey, extendedBaseHash, deviceSeed group.ElementModQ) (CiphertextBallotSelection, error) {
	nonce := ghash.Elems(descriptionHash, deviceSeed, ballotID)
	ciphertext, err := elgamal.Encrypt(vote, nonce, k)
	if err != nil {
		return CiphertextBallotSelection{}, fmt.Errorf("ballot: encrypting selection %s: %w", objectID, err)
	}
	disjunctiveProof, err := proof.MakeDisjunctiveChaumPedersen(ciphertext, nonce, k, extendedBaseHash, nonce, vote)
	if err != nil {
		return CiphertextBallotSelection{}, fmt.Errorf("ballot: proving selection %s: %w", objectID, err)
	}
	return CiphertextBallotSelection{
		ObjectID:        objectID,
		DescriptionHash: descriptionHash,
		Ciphertext:      ciphertext,
		Proof:           disjunctiveProof,
		IsPlaceholder:   isPlaceholder,
		Nonce:           nonce,
	}, nil
}

func findSelection(description ContestDescription, objectID string) (SelectionDescription, bool) {
	for _, s := range description.Selections {
		if s.ObjectID == objectID {
			return s, true
		}
	}
	return SelectionDescription{}, false
}
