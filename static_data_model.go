package facoding

// StaticDataModel is a fixed discrete distribution over an alphabet of
// N symbols (2 <= N <= MaxAlphabet). Unlike AdaptiveDataModel it never
// rescales; it carries only distribution and, for N>16, the same
// inverse-CDF lookup table used to accelerate decoding.
type StaticDataModel struct {
	distribution []uint32
	decoderTable []uint32

	dataSymbols, lastSymbol, tableSize, tableShift uint32
}

// NewStaticDataModel creates an empty static model. Call
// SetDistribution before using it to encode or decode.
func NewStaticDataModel() *StaticDataModel {
	return new(StaticDataModel)
}

// NewStaticDataModelWithDistribution creates a static model already
// built from the given probabilities (or a uniform distribution, if
// probability is nil).
func NewStaticDataModelWithDistribution(numberOfSymbols uint32, probability []float64) *StaticDataModel {
	m := new(StaticDataModel)
	m.SetDistribution(numberOfSymbols, probability)
	return m
}

// SetDistribution (re)builds the model's cumulative distribution table
// (and, for N>16, its decoder lookup table) from probability, or from
// a uniform 1/N distribution if probability is nil. Each probability
// must lie in [0,1] and the probabilities must sum to a value in
// [0.9999, 1.001].
func (m *StaticDataModel) SetDistribution(numberOfSymbols uint32, probability []float64) {
	if numberOfSymbols < 2 || numberOfSymbols > MaxAlphabet {
		fail("StaticDataModel.SetDistribution", "invalid number of data symbols")
	}

	if m.dataSymbols != numberOfSymbols {
		m.dataSymbols = numberOfSymbols
		m.lastSymbol = m.dataSymbols - 1

		if m.dataSymbols > 16 {
			tableBits := uint32(3)
			for m.dataSymbols > (1 << (tableBits + 2)) {
				tableBits++
			}
			m.tableSize = 1 << tableBits
			m.tableShift = DataLengthShift - tableBits
			// at least 2 extra CDF slots beyond the table, matching
			// the reference implementation's historical pad.
			m.distribution = make([]uint32, m.dataSymbols+m.tableSize+2)
			m.decoderTable = m.distribution[m.dataSymbols:]
		} else {
			m.decoderTable = nil
			m.tableSize, m.tableShift = 0, 0
			m.distribution = make([]uint32, m.dataSymbols)
		}
	}

	s := uint32(0)
	sum := 0.0
	uniform := 1.0 / float64(m.dataSymbols)

	for k := uint32(0); k < m.dataSymbols; k++ {
		p := uniform
		if probability != nil {
			p = probability[k]
		}
		if p < 0 || p > 1 {
			fail("StaticDataModel.SetDistribution", "invalid symbol probability")
		}

		m.distribution[k] = uint32(sum * (1 << DataLengthShift))
		sum += p

		if m.tableSize == 0 {
			continue
		}
		w := m.distribution[k] >> m.tableShift
		for s < w {
			s++
			m.decoderTable[s] = k - 1
		}
	}

	if m.tableSize != 0 {
		m.decoderTable[0] = 0
		for s <= m.tableSize {
			s++
			m.decoderTable[s] = m.dataSymbols - 1
		}
	}

	if sum < 0.9999 || sum > 1.001 {
		fail("StaticDataModel.SetDistribution", "invalid probabilities")
	}
}
