package facoding

// AdaptiveBitModel is the N=2 fast path of AdaptiveDataModel: a single
// learned probability that the next bit is 0, rescaled on the same
// geometrically growing cycle the general adaptive model uses, but
// without the CDF/table machinery a binary alphabet doesn't need.
type AdaptiveBitModel struct {
	updateCycle, bitsUntilUpdate   uint32
	bit0Prob, bit0Count, bitCount uint32
}

// NewAdaptiveBitModel creates a bit model reset to probability 0.5.
func NewAdaptiveBitModel() *AdaptiveBitModel {
	m := new(AdaptiveBitModel)
	m.Reset()
	return m
}

// Reset restores the model to probability 0.5 with a fresh update
// cycle.
func (m *AdaptiveBitModel) Reset() {
	m.bit0Count = 1
	m.bitCount = 2
	m.bit0Prob = 1 << (BitLengthShift - 1)
	m.updateCycle, m.bitsUntilUpdate = 4, 4
}

// update rescales the counts if they've grown past BitMaxCount,
// recomputes bit0Prob, and schedules the next rebuild.
func (m *AdaptiveBitModel) update() {
	m.bitCount += m.updateCycle
	if m.bitCount > BitMaxCount {
		m.bitCount = (m.bitCount + 1) >> 1
		m.bit0Count = (m.bit0Count + 1) >> 1
		if m.bit0Count == m.bitCount {
			// never let one outcome reach probability zero
			m.bitCount++
		}
	}

	scale := uint32(0x80000000 / m.bitCount)
	m.bit0Prob = (m.bit0Count * scale) >> (31 - BitLengthShift)

	m.updateCycle = (5 * m.updateCycle) >> 2
	if m.updateCycle > 64 {
		m.updateCycle = 64
	}
	m.bitsUntilUpdate = m.updateCycle
}
