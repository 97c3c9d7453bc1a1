package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairdre/gonature"
)

func TestParticleNumberIntegralsIsIdentity(t *testing.T) {
	for _, n := range []int{2, 4, 8, 12} {
		h1, err := ParticleNumberIntegrals(n)
		require.NoError(t, err)
		require.Len(t, h1, n)
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				if p == q {
					assert.Equal(t, 1.0, h1[p][q])
				} else {
					assert.Zero(t, h1[p][q])
				}
			}
		}
	}
}

func TestMagnetizationIntegralsBlockedSigns(t *testing.T) {
	h1, err := MagnetizationIntegrals(6)
	require.NoError(t, err)
	for p := 0; p < 3; p++ {
		assert.Equal(t, 0.5, h1[p][p])
		assert.Equal(t, -0.5, h1[p+3][p+3])
	}
	for p := 0; p < 6; p++ {
		for q := 0; q < 6; q++ {
			if p != q {
				assert.Zero(t, h1[p][q])
			}
		}
	}
}

func TestAngularMomentumIntegralsDiagonal(t *testing.T) {
	h1, h2, err := AngularMomentumIntegrals(4)
	require.NoError(t, err)
	for p := 0; p < 4; p++ {
		assert.InDelta(t, 0.75, h1[p][p], 1e-14)
	}
	// same-orbital pair terms cancel the 3/2 diagonal for a closed shell:
	// (1/2)(h2[0][2][2][0] + h2[2][0][0][2]) == -3/2 for spatial orbital 0
	assert.InDelta(t, -3.0, h2[0][2][2][0]+h2[2][0][0][2], 1e-14)
}

func TestCalculatorsRejectOddOrNonPositiveModes(t *testing.T) {
	for _, n := range []int{-2, 0, 3, 7} {
		_, err := ParticleNumberIntegrals(n)
		require.ErrorIs(t, err, gonature.ErrInvalidModeCount, "n=%d", n)
		_, err = MagnetizationIntegrals(n)
		require.ErrorIs(t, err, gonature.ErrInvalidModeCount, "n=%d", n)
		_, _, err = AngularMomentumIntegrals(n)
		require.ErrorIs(t, err, gonature.ErrInvalidModeCount, "n=%d", n)
	}
}

func TestCalculatorsArePureFunctions(t *testing.T) {
	a, err := MagnetizationIntegrals(4)
	require.NoError(t, err)
	a[0][0] = 99
	b, err := MagnetizationIntegrals(4)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b[0][0])
}
