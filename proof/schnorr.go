package proof

import (
	"go.dedis.ch/onet/v3/log"

	"github.com/Election-Tech-Initiative/electionguard-go/ghash"
	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

// SchnorrProof proves possession of the secret key underlying publicKey,
// without revealing it. Used for each Key Ceremony polynomial coefficient
// (spec.md §4.4).
//
// Grounded on original_source/schnorr.py's SchnorrProof /
// make_schnorr_proof.
type SchnorrProof struct {
	PublicKey  group.ElementModP
	Commitment group.ElementModP
	Challenge  group.ElementModQ
	Response   group.ElementModQ
}

// MakeSchnorrProof generates a proof that the prover knows secretKey,
// the discrete log of publicKey, using r as the proof's random nonce.
func MakeSchnorrProof(secretKey group.ElementModQ, publicKey group.ElementModP, r group.ElementModQ) SchnorrProof {
	h := group.GPowP(r)
	c := ghash.Elems(publicKey, h)
	u := group.APlusBCQ(r, secretKey, c)
	return SchnorrProof{PublicKey: publicKey, Commitment: h, Challenge: c, Response: u}
}

// IsValid checks the transcript for internal consistency: that the
// challenge was derived correctly and that g^response == commitment *
// publicKey^challenge.
func (p SchnorrProof) IsValid() bool {
	validPublicKey := p.PublicKey.IsValidResidue()
	inBoundsH := p.Commitment.InBounds()
	inBoundsU := p.Response.InBounds()

	c := ghash.Elems(p.PublicKey, p.Commitment)
	validChallenge := c.Equals(p.Challenge)

	validProof := group.GPowP(p.Response).Equals(
		group.MultP(p.Commitment, group.PowP(p.PublicKey, p.Challenge)),
	)

	success := validPublicKey && inBoundsH && inBoundsU && validChallenge && validProof
	if !success {
		log.Lvlf2("invalid schnorr proof: validPublicKey=%v inBoundsH=%v inBoundsU=%v validChallenge=%v validProof=%v",
			validPublicKey, inBoundsH, inBoundsU, validChallenge, validProof)
	}
	return success
}
