package facoding

// AdaptiveDataModel is a discrete distribution over an alphabet of N
// symbols (2 <= N <= MaxAlphabet) whose cumulative distribution is
// learned online from the symbols coded against it. Counts are
// accumulated between rebuilds on a geometrically growing cycle, and
// the distribution (plus, for N>16, an inverse-CDF lookup table) is
// recomputed from those counts each time the cycle elapses.
type AdaptiveDataModel struct {
	distribution, symbolCount, decoderTable []uint32

	totalCount, updateCycle, symbolsUntilUpdate uint32

	dataSymbols, lastSymbol, tableSize, tableShift uint32
}

// NewAdaptiveDataModel creates an adaptive model over numberOfSymbols
// symbols, reset to a uniform distribution.
func NewAdaptiveDataModel(numberOfSymbols uint32) *AdaptiveDataModel {
	m := new(AdaptiveDataModel)
	m.SetAlphabet(numberOfSymbols)
	return m
}

// SetAlphabet changes the model's alphabet size, reallocating its
// internal tables if the size actually changed, and resets it to a
// uniform distribution.
func (m *AdaptiveDataModel) SetAlphabet(numberOfSymbols uint32) {
	if numberOfSymbols < 2 || numberOfSymbols > MaxAlphabet {
		fail("AdaptiveDataModel.SetAlphabet", "invalid number of data symbols")
	}

	if m.dataSymbols != numberOfSymbols {
		m.dataSymbols = numberOfSymbols
		m.lastSymbol = m.dataSymbols - 1
		m.distribution = nil

		if m.dataSymbols > 16 {
			tableBits := uint32(3)
			for m.dataSymbols > (1 << (tableBits + 2)) {
				tableBits++
			}
			m.tableSize = 1 << tableBits
			m.tableShift = DataLengthShift - tableBits
			m.distribution = make([]uint32, 2*m.dataSymbols+m.tableSize+2)
			m.decoderTable = m.distribution[2*m.dataSymbols:]
		} else {
			m.decoderTable = nil
			m.tableSize, m.tableShift = 0, 0
			m.distribution = make([]uint32, 2*m.dataSymbols)
		}
		m.symbolCount = m.distribution[m.dataSymbols : 2*m.dataSymbols]
	}

	m.Reset()
}

// Reset restores the model to a uniform distribution over its current
// alphabet (a no-op before the first SetAlphabet).
func (m *AdaptiveDataModel) Reset() {
	if m.dataSymbols == 0 {
		return
	}

	m.totalCount = 0
	m.updateCycle = m.dataSymbols
	for k := uint32(0); k < m.dataSymbols; k++ {
		m.symbolCount[k] = 1
	}

	m.update(false)
	m.symbolsUntilUpdate, m.updateCycle = (m.dataSymbols+6)>>1, (m.dataSymbols+6)>>1
}

// update recomputes distribution (and, when rebuilding for decoding,
// decoderTable) from the current symbol counts, rescaling the counts
// first if their sum has grown past MaxCount, and schedules the next
// rebuild. fromEncoder skips the table rebuild: the encoder never
// consults decoderTable, only distribution.
func (m *AdaptiveDataModel) update(fromEncoder bool) {
	m.totalCount += m.updateCycle
	if m.totalCount > MaxCount {
		m.totalCount = 0
		for n := uint32(0); n < m.dataSymbols; n++ {
			m.symbolCount[n] = (m.symbolCount[n] + 1) >> 1
			m.totalCount += m.symbolCount[n]
		}
	}

	var sum, s uint32
	scale := uint32(0x80000000 / m.totalCount)

	if fromEncoder || m.tableSize == 0 {
		for k := uint32(0); k < m.dataSymbols; k++ {
			m.distribution[k] = (scale * sum) >> (31 - DataLengthShift)
			sum += m.symbolCount[k]
		}
	} else {
		for k := uint32(0); k < m.dataSymbols; k++ {
			m.distribution[k] = (scale * sum) >> (31 - DataLengthShift)
			sum += m.symbolCount[k]
			w := m.distribution[k] >> m.tableShift
			for s < w {
				s++
				m.decoderTable[s] = k - 1
			}
		}
		m.decoderTable[0] = 0
		for s <= m.tableSize {
			s++
			m.decoderTable[s] = m.dataSymbols - 1
		}
	}

	m.updateCycle = (5 * m.updateCycle) >> 2
	maxCycle := (m.dataSymbols + 6) << 3
	if m.updateCycle > maxCycle {
		m.updateCycle = maxCycle
	}
	m.symbolsUntilUpdate = m.updateCycle
}

// GetSymbolCount returns the model's current count for symbol: 1 after
// Reset/SetAlphabet, plus one for each time symbol has been coded
// against the model since. A rescale halves the counts in place, so
// this returns the post-rescale value.
func (m *AdaptiveDataModel) GetSymbolCount(symbol uint32) uint32 {
	if symbol >= m.dataSymbols {
		fail("AdaptiveDataModel.GetSymbolCount", "invalid data symbol")
	}
	return m.symbolCount[symbol]
}
