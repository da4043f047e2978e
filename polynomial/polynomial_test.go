package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Election-Tech-Initiative/electionguard-go/group"
)

func TestGenerateProducesValidProofs(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	p, err := Generate(3)
	require.NoError(t, err)
	require.Len(t, p.Coefficients, 3)
	for _, c := range p.Coefficients {
		assert.True(t, c.Proof.IsValid())
	}
}

func TestComputeAndVerifyCoordinate(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	p, err := Generate(3)
	require.NoError(t, err)

	coordinate := ComputeCoordinate(2, p)
	assert.True(t, VerifyCoordinate(coordinate, 2, p.Commitments()))
}

func TestVerifyCoordinateRejectsTamperedValue(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	p, err := Generate(2)
	require.NoError(t, err)

	coordinate := ComputeCoordinate(1, p)
	tampered := group.AddQ(coordinate, group.OneModQ)
	assert.False(t, VerifyCoordinate(tampered, 1, p.Commitments()))
}

func TestLagrangeCoefficientReconstructsSecret(t *testing.T) {
	defer group.UseTestConstants(group.MediumTestConstants())()

	p, err := Generate(2)
	require.NoError(t, err)
	secret := p.Coefficients[0].Value

	degrees := []int{1, 2, 3}
	shares := make([]group.ElementModQ, len(degrees))
	for i, d := range degrees {
		shares[i] = ComputeCoordinate(d, p)
	}

	reconstructed := group.ZeroModQ
	for i, d := range degrees {
		others := make([]int, 0, len(degrees)-1)
		for _, other := range degrees {
			if other != d {
				others = append(others, other)
			}
		}
		coeff, err := LagrangeCoefficient(d, others...)
		require.NoError(t, err)
		reconstructed = group.AddQ(reconstructed, group.MultQ(shares[i], coeff))
	}

	assert.True(t, reconstructed.Equals(secret))
}
