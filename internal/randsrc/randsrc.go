// Package randsrc provides the deterministic pseudo-random sources and
// timing helpers used by facoding's benchmarks and property tests: a
// Taus88 generator, bit/data sources built on it with a prescribed
// entropy or distribution, and a small stopwatch. Adapted from the
// FastAC test harness (test_support.h/.cpp) into Go, kept under
// internal/ because it is test and benchmark infrastructure, not
// public API.
package randsrc

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// MinProbability is the floor imposed on any per-symbol probability
// these sources construct, matching the reference test harness.
const MinProbability = 1e-4

// Chronometer is a small start/stop/read stopwatch used to report
// timing in benchmarks.
type Chronometer struct {
	on   bool
	mark time.Time
	time time.Duration
}

func (c *Chronometer) Reset() {
	c.time = 0
	c.on = false
}

func (c *Chronometer) Start(label string) {
	if label != "" {
		fmt.Println(label)
	}
	if c.on {
		fmt.Println("chronometer already on")
		return
	}
	c.on = true
	c.mark = time.Now()
}

func (c *Chronometer) Stop() {
	if !c.on {
		fmt.Println("chronometer already off")
		return
	}
	c.on = false
	c.time = time.Since(c.mark)
}

func (c *Chronometer) Read() time.Duration {
	if c.on {
		return c.time + time.Since(c.mark)
	}
	return c.time
}

// RandomGenerator is a Taus88 generator with period
// (2^31-1)*(2^29-1)*(2^28-1), the same generator the FastAC test
// harness uses to drive its synthetic sources.
type RandomGenerator struct {
	s1, s2, s3 uint32
}

func NewRandomGenerator(seed uint32) *RandomGenerator {
	rg := new(RandomGenerator)
	rg.SetSeed(seed)
	return rg
}

func (rg *RandomGenerator) SetSeed(seed uint32) {
	rg.s1 = 0x147AE11
	if seed != 0 {
		rg.s1 = seed & 0xFFFFFFF
	}
	rg.s2 = rg.s1 ^ 0xFFFFF07
	rg.s3 = rg.s1 ^ 0xF03CD2F
}

func (rg *RandomGenerator) Word() uint32 {
	var b uint32
	b = ((rg.s1 << 13) ^ rg.s1) >> 19
	rg.s1 = ((rg.s1 & 0xFFFFFFFE) << 12) ^ b
	b = ((rg.s2 << 2) ^ rg.s2) >> 25
	rg.s2 = ((rg.s2 & 0xFFFFFFF8) << 4) ^ b
	b = ((rg.s3 << 3) ^ rg.s3) >> 11
	rg.s3 = ((rg.s3 & 0xFFFFFFF0) << 17) ^ b
	return rg.s1 ^ rg.s2 ^ rg.s3
}

func (rg *RandomGenerator) Uniform() float64 {
	const wordToDouble = 1.0 / (1.0 + float64(0xFFFFFFFF))

	var b uint32
	b = ((rg.s1 << 13) ^ rg.s1) >> 19
	rg.s1 = ((rg.s1 & 0xFFFFFFFE) << 12) ^ b
	b = ((rg.s2 << 2) ^ rg.s2) >> 25
	rg.s2 = ((rg.s2 & 0xFFFFFFF8) << 4) ^ b
	b = ((rg.s3 << 3) ^ rg.s3) >> 11
	rg.s3 = ((rg.s3 & 0xFFFFFFF0) << 17) ^ b // open interval: 0 < r < 1
	return wordToDouble * (0.5 + float64(rg.s1^rg.s2^rg.s3))
}

func (rg *RandomGenerator) Integer(rangeN uint32) uint32 {
	return uint32(float64(rangeN) * rg.Uniform())
}

// RandomBitSource generates an i.i.d. biased bit stream with a
// prescribed skew or entropy.
type RandomBitSource struct {
	*RandomGenerator
	threshold uint32
	ent, prob0 float64
}

func NewRandomBitSource() *RandomBitSource {
	rbs := new(RandomBitSource)
	rbs.RandomGenerator = NewRandomGenerator(0)
	rbs.prob0 = 0.5
	rbs.ent = 1.0
	return rbs
}

func (rbs *RandomBitSource) Entropy() float64              { return rbs.ent }
func (rbs *RandomBitSource) Symbol0Probability() float64   { return rbs.prob0 }
func (rbs *RandomBitSource) Symbol1Probability() float64   { return 1.0 - rbs.prob0 }

func (rbs *RandomBitSource) SetProbability0(p0 float64) float64 {
	if p0 < MinProbability || p0 > 1.0-MinProbability {
		panic(errors.New("randsrc: invalid random bit probability"))
	}

	rbs.prob0 = p0
	rbs.threshold = uint32(p0 * 0xFFFFFFFF)
	rbs.ent = ((p0-1.0)*math.Log(1.0-p0) - p0*math.Log(p0)) / math.Log(2.0)
	return rbs.ent
}

func (rbs *RandomBitSource) SetEntropy(entropy float64) {
	if entropy < 0.0001 || entropy > 1.0 {
		panic(errors.New("randsrc: invalid random bit entropy"))
	}

	h, p := entropy*math.Log(2.0), 0.5*entropy*entropy
	for k := 0; k < 8; k++ {
		lp1 := math.Log(1.0 - p)
		lp2 := lp1 - math.Log(p)
		d := h + lp1 - p*lp2
		if math.Abs(d) < 1e-12 {
			break
		}
		p += d / lp2
	}
	rbs.SetProbability0(p)
}

func (rbs *RandomBitSource) SwitchProbabilities() {
	rbs.SetProbability0(1.0 - rbs.prob0)
}

func (rbs *RandomBitSource) ShuffleProbabilities() {
	if rbs.Word() > 0x80000000 {
		rbs.SetProbability0(1.0 - rbs.prob0)
	}
}

func (rbs *RandomBitSource) Bit() uint32 {
	if rbs.Word() > rbs.threshold {
		return 1
	}
	return 0
}

// RandomDataSource generates an i.i.d. stream over an N-ary alphabet
// with a prescribed distribution, or a truncated-geometric
// distribution matching a prescribed entropy.
type RandomDataSource struct {
	*RandomGenerator
	ent  float64
	prob []float64

	symbols  uint32
	dist     []uint32
	lowBound [257]uint32
}

func NewRandomDataSource() *RandomDataSource {
	rds := new(RandomDataSource)
	rds.RandomGenerator = NewRandomGenerator(0)
	return rds
}

func (rds *RandomDataSource) Entropy() float64        { return rds.ent }
func (rds *RandomDataSource) Probability() []float64  { return rds.prob }
func (rds *RandomDataSource) DataSymbols() uint32     { return rds.symbols }

func (rds *RandomDataSource) assignMemory(dim uint32) {
	if rds.symbols == dim {
		return
	}
	rds.symbols = dim
	rds.prob = make([]float64, dim)
	rds.dist = make([]uint32, dim)
}

// SetDistribution assigns an explicit per-symbol probability array.
func (rds *RandomDataSource) SetDistribution(dim uint32, probability []float64) float64 {
	rds.assignMemory(dim)

	var sum float64
	rds.ent = 0

	var s uint32
	rds.lowBound[0] = 0

	const doubleToWord = 1.0 + float64(0xFFFFFFFF)

	for n := uint32(0); n < rds.symbols; n++ {
		p := probability[n]
		if p < MinProbability {
			panic(errors.New("randsrc: invalid random source probability"))
		}
		rds.prob[n] = p
		rds.dist[n] = uint32(0.49 + doubleToWord*sum)
		w := rds.dist[n] >> 24
		for s < w {
			s++
			rds.lowBound[s] = n - 1
		}
		sum += p
		rds.ent -= p * math.Log(p)
	}

	for s < 256 {
		s++
		rds.lowBound[s] = rds.symbols - 1
	}

	if math.Abs(1.0-sum) > 1e-4 {
		panic(errors.New("randsrc: invalid random source distribution"))
	}
	rds.ent /= math.Log(2.0)
	return rds.ent
}

// setTG fills prob with a truncated geometric distribution of decay
// rate a and returns its entropy in bits/symbol.
func (rds *RandomDataSource) setTG(a float64) float64 {
	m := float64(rds.symbols)
	var s float64
	if a > 1e-4 {
		s = (1.0 - math.Exp(-a)) / (1.0 - math.Exp(-a*m))
	} else {
		s = (2.0 - a) / (m * (2.0 - a*m))
	}

	var r, e float64
	for n := int(rds.symbols - 1); n >= 0; n-- {
		var p float64
		if a*float64(n) > 30.0 {
			p = 0
		} else {
			p = s * math.Exp(-a*float64(n))
		}

		if p < MinProbability {
			r += MinProbability - p
			p = MinProbability
		} else if r > 0 {
			if r <= p-MinProbability {
				p -= r
				r = 0
			} else {
				r -= p - MinProbability
				p = MinProbability
			}
		}
		rds.prob[n] = p
		e -= p * math.Log(p)
	}
	return e / math.Log(2.0)
}

// SetTruncatedGeometric builds a truncated-geometric distribution over
// dim symbols whose entropy matches the requested value, via a
// bisection/secant zero-finder on the decay rate.
func (rds *RandomDataSource) SetTruncatedGeometric(dim uint32, entropy float64) float64 {
	rds.assignMemory(dim)

	maxEntropy := math.Log(float64(rds.symbols)) / math.Log(2.0)
	marginalProb := float64(dim-1) * MinProbability
	minEntropy := ((marginalProb-1.0)*math.Log(1.0-marginalProb) - marginalProb*math.Log(MinProbability)) * 1.2 / math.Log(2.0)

	if entropy <= minEntropy || entropy > maxEntropy {
		panic(errors.New("randsrc: invalid data source entropy"))
	}

	zf := NewZeroFinder(0, 2)
	a := zf.SetNewResult(maxEntropy - entropy)

	for itr := 0; itr < 20; itr++ {
		ne := rds.setTG(a) - entropy
		if math.Abs(ne) < 1e-5 {
			break
		}
		a = zf.SetNewResult(ne)
	}

	rds.SetDistribution(rds.symbols, rds.prob)
	if math.Abs(rds.ent-entropy) > 1e-4 {
		panic(errors.New("randsrc: cannot set random source entropy"))
	}
	return rds.ent
}

func (rds *RandomDataSource) ShuffleProbabilities() {
	for n := rds.symbols - 1; n > 0; n-- {
		m := rds.Integer(n + 1)
		if m == n {
			continue
		}
		rds.prob[m], rds.prob[n] = rds.prob[n], rds.prob[m]
	}
	rds.SetDistribution(rds.symbols, rds.prob)
}

// Data draws one symbol from the current distribution.
func (rds *RandomDataSource) Data() uint32 {
	v := rds.Word()
	w := v >> 24
	u, n := rds.lowBound[w], rds.lowBound[w+1]+1
	for n > u+1 {
		m := (u + n) >> 1
		if rds.dist[m] < v {
			u = m
		} else {
			n = m
		}
	}
	return u
}

// ZeroFinder is a secant/regula-falsi root finder used to invert the
// entropy function when constructing a truncated-geometric source.
type ZeroFinder struct {
	phase, iter int
	x0, y0, x1, y1, x2, y2, x float64
}

func NewZeroFinder(firstX, secondX float64) *ZeroFinder {
	zf := new(ZeroFinder)
	zf.x0 = firstX
	zf.x1 = secondX
	return zf
}

func (zf *ZeroFinder) SetNewResult(y float64) float64 {
	zf.iter++
	if zf.iter > 30 {
		panic(errors.New("randsrc: cannot find solution"))
	}

	if zf.phase >= 2 {
		if y*zf.y0 <= 0 {
			if zf.phase == 2 || math.Abs(zf.y1) < math.Abs(zf.y2) {
				zf.x2, zf.y2 = zf.x1, zf.y1
			}
			zf.x1, zf.y1 = zf.x, y
		} else {
			if zf.phase == 2 || math.Abs(zf.y0) < math.Abs(zf.y2) {
				zf.x2, zf.y2 = zf.x0, zf.y0
			}
			zf.x0, zf.y0 = zf.x, y
		}

		if math.Abs(zf.y0) < math.Abs(zf.y1) {
			r, c := zf.y0/zf.y2, zf.x2-zf.x0
			s, d := zf.y0/zf.y1, zf.x1-zf.x0
			zf.x = zf.x0 - (c*d*(s-r))/(c*(1.0-s)-d*(1.0-r))
		} else {
			r, c := zf.y1/zf.y2, zf.x2-zf.x1
			s, d := zf.y1/zf.y0, zf.x0-zf.x1
			zf.x = zf.x1 - (c*d*(s-r))/(c*(1.0-s)-d*(1.0-r))
		}
		zf.phase = 3
		return zf.x
	}

	if zf.iter > 8 {
		panic(errors.New("randsrc: too many initial tests"))
	}

	if zf.phase == 1 {
		if y*zf.y0 <= 0 {
			zf.y1 = y
			zf.phase = 2
			if math.Abs(zf.y0) < math.Abs(zf.y1) {
				s := zf.y0 / zf.y1
				zf.x = zf.x0 - ((zf.x1-zf.x0)*s)/(1.0-s)
			} else {
				s := zf.y1 / zf.y0
				zf.x = zf.x1 - ((zf.x0-zf.x1)*s)/(1.0-s)
			}
		} else {
			zf.x += zf.x1 - zf.x0
			zf.x0, zf.y0 = zf.x1, y
			zf.x1 = zf.x
		}
		return zf.x
	}

	zf.y0 = y
	zf.phase = 1
	zf.x = zf.x1
	return zf.x
}
