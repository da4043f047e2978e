package ballot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func testManifest() Manifest {
	return Manifest{
		BallotStyleID: "ballot-style-1",
		Contests: []ContestDescription{
			{
				ObjectID:       "contest-1",
				SequenceOrder:  0,
				SelectionLimit: 1,
				Selections: []SelectionDescription{
					{ObjectID: "candidate-a", SequenceOrder: 0, CandidateID: "a"},
					{ObjectID: "candidate-b", SequenceOrder: 1, CandidateID: "b"},
				},
			},
		},
	}
}

func votedBallot(vote string) PlaintextBallot {
	selections := []PlaintextBallotSelection{
		{ObjectID: "candidate-a", Vote: 0},
		{ObjectID: "candidate-b", Vote: 0},
	}
	for i := range selections {
		if selections[i].ObjectID == vote {
			selections[i].Vote = 1
		}
	}
	return PlaintextBallot{
		ObjectID: "ballot-1",
		StyleID:  "ballot-style-1",
		Contests: []PlaintextBallotContest{
			{ObjectID: "contest-1", Selections: selections},
		},
	}
}

func TestEncryptProducesValidProofs(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, err := group.RandQ()
	require.NoError(t, err)
	deviceSeed, err := group.RandQ()
	require.NoError(t, err)

	encrypted, err := Encrypt(votedBallot("candidate-a"), manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	require.NoError(t, err)
	assert.True(t, encrypted.IsValidEncryption(keys.PublicKey, extendedBaseHash))
}

func TestEncryptIsDeterministicUnderSameDeviceSeed(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, err := group.RandQ()
	require.NoError(t, err)
	deviceSeed, err := group.RandQ()
	require.NoError(t, err)

	first, err := Encrypt(votedBallot("candidate-a"), manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	require.NoError(t, err)
	second, err := Encrypt(votedBallot("candidate-a"), manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	require.NoError(t, err)

	assert.True(t, first.CryptoHash().Equals(second.CryptoHash()))
	for i := range first.Contests[0].Selections {
		assert.True(t, first.Contests[0].Selections[i].Ciphertext.Equals(second.Contests[0].Selections[i].Ciphertext))
	}
}

func TestEncryptRejectsWrongStyle(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, _ := group.RandQ()
	deviceSeed, _ := group.RandQ()

	b := votedBallot("candidate-a")
	b.StyleID = "wrong-style"

	_, err = Encrypt(b, manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	assert.ErrorIs(t, err, egerror.ErrWrongStyle)
}

func TestEncryptRejectsUnknownSelection(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, _ := group.RandQ()
	deviceSeed, _ := group.RandQ()

	b := votedBallot("candidate-a")
	b.Contests[0].Selections = append(b.Contests[0].Selections, PlaintextBallotSelection{ObjectID: "candidate-z", Vote: 1})

	_, err = Encrypt(b, manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	assert.ErrorIs(t, err, egerror.ErrUnknownSelection)
}

func TestEncryptRejectsOverVote(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, _ := group.RandQ()
	deviceSeed, _ := group.RandQ()

	b := votedBallot("candidate-a")
	b.Contests[0].Selections[1].Vote = 1

	_, err = Encrypt(b, manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	assert.ErrorIs(t, err, egerror.ErrOverVote)
}

func TestEncryptEmptyContestStillSumsToSelectionLimit(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, _ := group.RandQ()
	deviceSeed, _ := group.RandQ()

	b := PlaintextBallot{
		ObjectID: "ballot-empty",
		StyleID:  "ballot-style-1",
		Contests: []PlaintextBallotContest{
			{ObjectID: "contest-1", Selections: []PlaintextBallotSelection{
				{ObjectID: "candidate-a", Vote: 0},
				{ObjectID: "candidate-b", Vote: 0},
			}},
		},
	}

	encrypted, err := Encrypt(b, manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	require.NoError(t, err)
	assert.True(t, encrypted.IsValidEncryption(keys.PublicKey, extendedBaseHash))

	plaintext, err := elgamal.Decrypt(encrypted.Contests[0].EncryptedTotal, keys.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, 1, plaintext)
}

func TestCastAndSpoilStatesAreImmutable(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	manifest := testManifest()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)
	extendedBaseHash, _ := group.RandQ()
	deviceSeed, _ := group.RandQ()

	encrypted, err := Encrypt(votedBallot("candidate-a"), manifest, keys.PublicKey, extendedBaseHash, deviceSeed)
	require.NoError(t, err)

	cast := CastBallot(encrypted)
	spoiled := SpoilBallot(encrypted)
	assert.Equal(t, Cast, cast.State)
	assert.Equal(t, Spoiled, spoiled.State)
}
