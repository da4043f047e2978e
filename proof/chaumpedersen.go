package proof

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/egerror"
	"github.com/Election-Tech-Initiative/electionguard-go/elgamal"
	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// ChaumPedersenProof proves that a value M corresponds to a specific
// encryption: log_G K = log_A M, without revealing the shared secret
// (spec.md §4.5, used for decryption shares).
//
// Grounded on original_source/chaum_pedersen.py's ChaumPedersenProof /
// make_chaum_pedersen.
type ChaumPedersenProof struct {
	Pad       group.ElementModP
	Data      group.ElementModP
	Challenge group.ElementModQ
	Response  group.ElementModQ
}

// MakeChaumPedersen produces a proof that m = message.Pad^s, where s is
// the secret exponent used to derive m (e.g. a guardian's secret key
// share). seed drives the proof's internal randomness; hashHeader is
// mixed into the challenge, normally the election extended base hash.
func MakeChaumPedersen(message elgamal.Ciphertext, s group.ElementModQ, m group.ElementModP, seed, hashHeader group.ElementModQ) ChaumPedersenProof {
	u := NewNonces(seed, "constant-chaum-pedersen-proof").At(0)
	a := group.GPowP(u)
	b := group.PowP(message.Pad, u)
	c := ghash.Elems(hashHeader, message.Pad, message.Data, a, b, m)
	v := group.APlusBCQ(u, c, s)
	return ChaumPedersenProof{Pad: a, Data: b, Challenge: c, Response: v}
}

// IsValid checks the transcript against message, the claimed public key
// k, the claimed value m, and the hash header used at generation time.
func (p ChaumPedersenProof) IsValid(message elgamal.Ciphertext, k, m group.ElementModP, hashHeader group.ElementModQ) bool {
	alpha, beta := message.Pad, message.Data
	a, b, c, v := p.Pad, p.Data, p.Challenge, p.Response

	inBoundsAlpha := alpha.IsValidResidue()
	inBoundsBeta := beta.IsValidResidue()
	inBoundsK := k.IsValidResidue()
	inBoundsM := m.IsValidResidue()
	inBoundsA := a.IsValidResidue()
	inBoundsB := b.IsValidResidue()
	inBoundsC := c.InBounds()
	inBoundsV := v.InBounds()
	inBoundsQ := hashHeader.InBounds()

	sameC := c.Equals(ghash.Elems(hashHeader, alpha, beta, a, b, m))
	consistentGV := inBoundsV && inBoundsA && inBoundsC &&
		group.GPowP(v).Equals(group.MultP(a, group.PowP(k, c)))
	consistentAV := inBoundsAlpha && inBoundsB && inBoundsC && inBoundsV &&
		group.PowP(alpha, v).Equals(group.MultP(b, group.PowP(m, c)))

	success := inBoundsAlpha && inBoundsBeta && inBoundsK && inBoundsM &&
		inBoundsA && inBoundsB && inBoundsC && inBoundsV && inBoundsQ &&
		sameC && consistentGV && consistentAV

	if !success {
		log.Lvl2("invalid chaum-pedersen proof")
	}
	return success
}

// DisjunctiveChaumPedersenProof proves that an ElGamal ciphertext encrypts
// either 0 or 1, without revealing which (spec.md §4.5, used for every
// ballot selection).
//
// Grounded on original_source/chaum_pedersen.py's
// DisjunctiveChaumPedersenProof / make_disjunctive_chaum_pedersen_{zero,one}.
type DisjunctiveChaumPedersenProof struct {
	ProofZeroPad       group.ElementModP
	ProofZeroData      group.ElementModP
	ProofOnePad        group.ElementModP
	ProofOneData       group.ElementModP
	ProofZeroChallenge group.ElementModQ
	ProofOneChallenge  group.ElementModQ
	Challenge          group.ElementModQ
	ProofZeroResponse  group.ElementModQ
	ProofOneResponse   group.ElementModQ
}

// MakeDisjunctiveChaumPedersen dispatches to the zero or one branch
// depending on plaintext, which must be 0 or 1.
func MakeDisjunctiveChaumPedersen(message elgamal.Ciphertext, r group.ElementModQ, k group.ElementModP, q, seed group.ElementModQ, plaintext int) (DisjunctiveChaumPedersenProof, error) {
	switch plaintext {
	case 0:
		return makeDisjunctiveChaumPedersenZero(message, r, k, q, seed), nil
	case 1:
		return makeDisjunctiveChaumPedersenOne(message, r, k, q, seed), nil
	default:
		return DisjunctiveChaumPedersenProof{}, fmt.Errorf("proof: disjunctive chaum-pedersen only supports 0 or 1, got %d: %w", plaintext, egerror.ErrInvariantViolation)
	}
}

func makeDisjunctiveChaumPedersenZero(message elgamal.Ciphertext, r group.ElementModQ, k group.ElementModP, q, seed group.ElementModQ) DisjunctiveChaumPedersenProof {
	alpha, beta := message.Pad, message.Data
	nonces := NewNonces(seed, "disjoint-chaum-pedersen-proof").Take(3)
	c1, v1, u0 := nonces[0], nonces[1], nonces[2]

	a0 := group.GPowP(u0)
	b0 := group.PowP(k, u0)
	qMinusC1 := group.NegateQ(c1)
	a1 := group.MultP(group.GPowP(v1), group.PowP(alpha, qMinusC1))
	b1 := group.MultP(group.PowP(k, v1), group.GPowP(c1), group.PowP(beta, qMinusC1))
	c := ghash.Elems(q, alpha, beta, a0, b0, a1, b1)
	c0 := group.AMinusBQ(c, c1)
	v0 := group.APlusBCQ(u0, c0, r)

	return DisjunctiveChaumPedersenProof{
		ProofZeroPad: a0, ProofZeroData: b0,
		ProofOnePad: a1, ProofOneData: b1,
		ProofZeroChallenge: c0, ProofOneChallenge: c1,
		Challenge: c, ProofZeroResponse: v0, ProofOneResponse: v1,
	}
}

func makeDisjunctiveChaumPedersenOne(message elgamal.Ciphertext, r group.ElementModQ, k group.ElementModP, q, seed group.ElementModQ) DisjunctiveChaumPedersenProof {
	alpha, beta := message.Pad, message.Data
	nonces := NewNonces(seed, "disjoint-chaum-pedersen-proof").Take(3)
	c0, v0, u1 := nonces[0], nonces[1], nonces[2]

	qMinusC0 := group.NegateQ(c0)
	a0 := group.MultP(group.GPowP(v0), group.PowP(alpha, qMinusC0))
	b0 := group.MultP(group.PowP(k, v0), group.PowP(beta, qMinusC0))
	a1 := group.GPowP(u1)
	b1 := group.PowP(k, u1)
	c := ghash.Elems(q, alpha, beta, a0, b0, a1, b1)
	c1 := group.AMinusBQ(c, c0)
	v1 := group.APlusBCQ(u1, c1, r)

	return DisjunctiveChaumPedersenProof{
		ProofZeroPad: a0, ProofZeroData: b0,
		ProofOnePad: a1, ProofOneData: b1,
		ProofZeroChallenge: c0, ProofOneChallenge: c1,
		Challenge: c, ProofZeroResponse: v0, ProofOneResponse: v1,
	}
}

// IsValid checks the disjunctive transcript against message, the
// election public key k, and the extended base hash q.
func (p DisjunctiveChaumPedersenProof) IsValid(message elgamal.Ciphertext, k group.ElementModP, q group.ElementModQ) bool {
	alpha, beta := message.Pad, message.Data
	a0, b0, a1, b1 := p.ProofZeroPad, p.ProofZeroData, p.ProofOnePad, p.ProofOneData
	c0, c1, c := p.ProofZeroChallenge, p.ProofOneChallenge, p.Challenge
	v0, v1 := p.ProofZeroResponse, p.ProofOneResponse

	inBounds := alpha.IsValidResidue() && beta.IsValidResidue() &&
		a0.IsValidResidue() && b0.IsValidResidue() &&
		a1.IsValidResidue() && b1.IsValidResidue() &&
		c0.InBounds() && c1.InBounds() && v0.InBounds() && v1.InBounds()

	consistentC := group.AddQ(c0, c1).Equals(c) && c.Equals(ghash.Elems(q, alpha, beta, a0, b0, a1, b1))
	consistentGV0 := group.GPowP(v0).Equals(group.MultP(a0, group.PowP(alpha, c0)))
	consistentGV1 := group.GPowP(v1).Equals(group.MultP(a1, group.PowP(alpha, c1)))
	consistentKV0 := group.PowP(k, v0).Equals(group.MultP(b0, group.PowP(beta, c0)))
	consistentGC1KV1 := group.MultP(group.GPowP(c1), group.PowP(k, v1)).Equals(group.MultP(b1, group.PowP(beta, c1)))

	success := inBounds && consistentC && consistentGV0 && consistentGV1 && consistentKV0 && consistentGC1KV1
	if !success {
		log.Lvl2("invalid disjunctive chaum-pedersen proof")
	}
	return success
}

// ConstantChaumPedersenProof proves that an ElGamal ciphertext sums to a
// specific declared constant (spec.md §4.5, used to enforce selection and
// contest limits).
//
// Grounded on original_source/chaum_pedersen.py's
// ConstantChaumPedersenProof / make_constant_chaum_pedersen.
type ConstantChaumPedersenProof struct {
	Pad       group.ElementModP
	Data      group.ElementModP
	Challenge group.ElementModQ
	Response  group.ElementModQ
	Constant  int
}

// maxSaneConstant bounds the constant so that decryption (which must
// bounded-discrete-log it back out) stays tractable.
const maxSaneConstant = 1_000_000_000

// MakeConstantChaumPedersen produces a proof that message encrypts
// constant under public key k, with r the aggregate encryption nonce.
func MakeConstantChaumPedersen(message elgamal.Ciphertext, constant int, r group.ElementModQ, k group.ElementModP, seed, hashHeader group.ElementModQ) ConstantChaumPedersenProof {
	alpha, beta := message.Pad, message.Data
	u := NewNonces(seed, "constant-chaum-pedersen-proof").At(0)
	a := group.GPowP(u)
	b := group.PowP(k, u)
	c := ghash.Elems(hashHeader, alpha, beta, a, b)
	v := group.APlusBCQ(u, c, r)
	return ConstantChaumPedersenProof{Pad: a, Data: b, Challenge: c, Response: v, Constant: constant}
}

// IsValid checks the constant-proof transcript against message, the
// election public key k, and the extended base hash q.
func (p ConstantChaumPedersenProof) IsValid(message elgamal.Ciphertext, k group.ElementModP, q group.ElementModQ) bool {
	alpha, beta := message.Pad, message.Data
	a, b, c, v := p.Pad, p.Data, p.Challenge, p.Response

	inBoundsAlpha := alpha.IsValidResidue()
	inBoundsBeta := beta.IsValidResidue()
	inBoundsA := a.IsValidResidue()
	inBoundsB := b.IsValidResidue()
	inBoundsC := c.InBounds()
	inBoundsV := v.InBounds()
	saneConstant := p.Constant >= 0 && p.Constant < maxSaneConstant
	constantQ := group.IntModQ(p.Constant)

	sameC := c.Equals(ghash.Elems(q, alpha, beta, a, b))
	consistentGV := inBoundsV && inBoundsA && inBoundsAlpha && inBoundsC &&
		group.GPowP(v).Equals(group.MultP(a, group.PowP(alpha, c)))
	consistentKV := group.MultP(group.GPowP(group.MultQ(c, constantQ)), group.PowP(k, v)).Equals(group.MultP(b, group.PowP(beta, c)))

	success := inBoundsAlpha && inBoundsBeta && inBoundsA && inBoundsB &&
		inBoundsC && inBoundsV && sameC && saneConstant && consistentGV && consistentKV

	if !success {
		log.Lvl2("invalid constant chaum-pedersen proof")
	}
	return success
}
