package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Election-Tech-Initiative/electionguard-go/ballot"
	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func testManifest() ballot.Manifest {
	return ballot.Manifest{
		BallotStyleID: "style-1",
		Contests: []ballot.ContestDescription{
			{
				ObjectID:       "contest-1",
				SequenceOrder:  0,
				SelectionLimit: 1,
				Selections: []ballot.SelectionDescription{
					{ObjectID: "candidate-a", SequenceOrder: 0, CandidateID: "a"},
					{ObjectID: "candidate-b", SequenceOrder: 1, CandidateID: "b"},
				},
			},
		},
	}
}

func makeCastBallot(t *testing.T, id string, k elgamal.PublicKey, vote int) ballot.CiphertextBallot {
	t.Helper()
	nonce, err := group.RandQ()
	require.NoError(t, err)
	ciphertext, err := elgamal.Encrypt(vote, nonce, k)
	require.NoError(t, err)
	return ballot.CiphertextBallot{
		BallotID: id,
		StyleID:  "style-1",
		Contests: []ballot.CiphertextBallotContest{
			{
				ObjectID: "contest-1",
				Selections: []ballot.CiphertextBallotSelection{
					{ObjectID: "candidate-a", Ciphertext: ciphertext},
				},
			},
		},
	}
}

func TestAddCastAccumulatesHomomorphically(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)

	ta := New(testManifest())
	require.NoError(t, ta.AddCast(makeCastBallot(t, "b1", keys.PublicKey, 1)))
	require.NoError(t, ta.AddCast(makeCastBallot(t, "b2", keys.PublicKey, 0)))
	require.NoError(t, ta.AddCast(makeCastBallot(t, "b3", keys.PublicKey, 1)))

	c, ok := ta.CiphertextFor("contest-1", "candidate-a")
	require.True(t, ok)
	plaintext, err := elgamal.Decrypt(c, keys.SecretKey)
	require.NoError(t, err)
	assert.Equal(t, 2, plaintext)
	assert.Equal(t, 3, ta.CastBallotCount())
}

func TestTallyIsOrderIndependent(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)

	b1 := makeCastBallot(t, "b1", keys.PublicKey, 1)
	b2 := makeCastBallot(t, "b2", keys.PublicKey, 1)
	b3 := makeCastBallot(t, "b3", keys.PublicKey, 0)

	forward := New(testManifest())
	require.NoError(t, forward.AddCast(b1))
	require.NoError(t, forward.AddCast(b2))
	require.NoError(t, forward.AddCast(b3))

	reverse := New(testManifest())
	require.NoError(t, reverse.AddCast(b3))
	require.NoError(t, reverse.AddCast(b2))
	require.NoError(t, reverse.AddCast(b1))

	cf, _ := forward.CiphertextFor("contest-1", "candidate-a")
	cr, _ := reverse.CiphertextFor("contest-1", "candidate-a")
	assert.True(t, cf.Equals(cr))
}

func TestAddCastRejectsDuplicateBallotID(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)

	ta := New(testManifest())
	b := makeCastBallot(t, "b1", keys.PublicKey, 1)
	require.NoError(t, ta.AddCast(b))

	before, _ := ta.CiphertextFor("contest-1", "candidate-a")
	err = ta.AddCast(b)
	assert.ErrorIs(t, err, egerror.ErrDuplicateBallot)

	after, _ := ta.CiphertextFor("contest-1", "candidate-a")
	assert.True(t, before.Equals(after))
	assert.Equal(t, 1, ta.CastBallotCount())
}

func TestSpoiledBallotsAreNotAccumulated(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()
	keys, err := elgamal.GenerateKeyPair()
	require.NoError(t, err)

	ta := New(testManifest())
	spoiled := makeCastBallot(t, "spoiled-1", keys.PublicKey, 1)
	ta.AddSpoiled(spoiled)

	c, ok := ta.CiphertextFor("contest-1", "candidate-a")
	require.True(t, ok)
	assert.True(t, c.Equals(identityCiphertext))
	assert.Equal(t, 0, ta.CastBallotCount())
	assert.Len(t, ta.SpoiledBallots(), 1)
}

// TestEmptySelectionReportsIdentityCiphertext covers spec.md §8's
// boundary behavior: a manifest-known selection that never receives a
// cast ballot still reports the (1, 1) accumulator, not an absent
// entry.
func TestEmptySelectionReportsIdentityCiphertext(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	ta := New(testManifest())

	c, ok := ta.CiphertextFor("contest-1", "candidate-b")
	require.True(t, ok)
	assert.True(t, c.Equals(identityCiphertext))
	assert.Equal(t, group.OneModP, c.Pad)
	assert.Equal(t, group.OneModP, c.Data)

	selections := ta.Selections()
	require.Contains(t, selections, "contest-1/candidate-a")
	require.Contains(t, selections, "contest-1/candidate-b")
	assert.True(t, selections["contest-1/candidate-a"].Equals(identityCiphertext))
}
