package facoding

// StaticBitModel is the N=2 fast path of StaticDataModel: a fixed
// probability that the next bit is 0, tracked directly instead of
// through the general CDF machinery.
type StaticBitModel struct {
	bit0Prob uint32
}

// NewStaticBitModel creates a bit model with probability 0.5.
func NewStaticBitModel() *StaticBitModel {
	return &StaticBitModel{bit0Prob: 1 << (BitLengthShift - 1)}
}

// SetProbability0 sets the fixed probability that the next bit coded
// against this model is 0. p0 must lie in [0.0001, 0.9999].
func (m *StaticBitModel) SetProbability0(p0 float64) {
	if p0 < 0.0001 || p0 > 0.9999 {
		fail("StaticBitModel.SetProbability0", "invalid bit probability")
	}
	m.bit0Prob = uint32(p0 * (1 << BitLengthShift))
}
