package facoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptiveDataModelSetAlphabetValidation(t *testing.T) {
	m := NewAdaptiveDataModel(8)
	assert.Panics(t, func() { m.SetAlphabet(1) })
	assert.Panics(t, func() { m.SetAlphabet(MaxAlphabet + 1) })
}

func TestAdaptiveDataModelUniformAfterReset(t *testing.T) {
	m := NewAdaptiveDataModel(4)
	for k := uint32(0); k < 4; k++ {
		assert.EqualValues(t, 1, m.GetSymbolCount(k))
	}
}

func TestAdaptiveDataModelGetSymbolCountBounds(t *testing.T) {
	m := NewAdaptiveDataModel(4)
	assert.Panics(t, func() { m.GetSymbolCount(4) })
}

// TestAdaptiveDataModelCDFMonotonic verifies that after heavy, skewed
// use the cumulative distribution built on every rebuild stays
// non-decreasing and anchored at zero, across both small (no table)
// and large (tabled) alphabets.
func TestAdaptiveDataModelCDFMonotonic(t *testing.T) {
	for _, n := range []uint32{2, 16, 17, 256, 2048} {
		n := n
		t.Run("", func(t *testing.T) {
			m := NewAdaptiveDataModel(n)
			require.Zero(t, m.distribution[0])

			for i := 0; i < 5000; i++ {
				// skew heavily toward symbol 0 to stress rescaling
				sym := uint32(0)
				if i%3 == 0 {
					sym = uint32(i) % n
				}
				m.symbolCount[sym]++
				m.symbolsUntilUpdate--
				if m.symbolsUntilUpdate == 0 {
					m.update(i%2 == 0)
				}

				require.Zero(t, m.distribution[0])
				for k := uint32(1); k < n; k++ {
					require.GreaterOrEqual(t, m.distribution[k], m.distribution[k-1])
				}
			}
		})
	}
}

func TestAdaptiveDataModelRescale(t *testing.T) {
	m := NewAdaptiveDataModel(4)
	for i := 0; i < 200000; i++ {
		m.symbolCount[i%4]++
		m.symbolsUntilUpdate--
		if m.symbolsUntilUpdate == 0 {
			m.update(true)
		}
	}
	assert.LessOrEqual(t, m.totalCount, uint32(MaxCount))
}
