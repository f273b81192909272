package noise

import (
	"math"

	"github.com/onchainrugs/rugweave/internal/detmath"
)

const (
	perlinSize    = 4095
	perlinYWrap   = 157
	perlinZWrap   = 113
	ampFalloff    = 0.5
	defaultOctave = 4
)

// Perlin is the table-driven value-noise field from p5.js.
//
// The table is filled once from the LCG at construction and never written
// again, so Noise is a pure function of the coordinates.
type Perlin struct {
	table   [perlinSize + 1]float64
	octaves int
}

// NewPerlin builds a noise field for seed. Octaves below 1 select the
// default of 4.
func NewPerlin(seed uint32, octaves int) *Perlin {
	if octaves < 1 {
		octaves = defaultOctave
	}
	p := &Perlin{octaves: octaves}
	z := seed
	for i := range p.table {
		z = lcgA*z + lcgC
		p.table[i] = float64(z) / twoPow32
	}
	return p
}

// Octaves returns the number of summed octaves.
func (p *Perlin) Octaves() int { return p.octaves }

// Noise samples the field at (x, y, z). Negative coordinates are mirrored
// and the lattice wraps every 4096 units. The result lies in [0, 1).
func (p *Perlin) Noise(x, y, z float64) float64 {
	x, y, z = math.Abs(x), math.Abs(y), math.Abs(z)

	xi, xf := split(x)
	yi, yf := split(y)
	zi, zf := split(z)

	var r float64
	ampl := 0.5
	for o := 0; o < p.octaves; o++ {
		of := (xi & perlinSize) + (yi&perlinSize)*perlinYWrap + (zi&perlinSize)*perlinZWrap

		rxf := detmath.Fade(xf)
		ryf := detmath.Fade(yf)

		n1 := detmath.Lerp(
			detmath.Lerp(p.at(of), p.at(of+1), rxf),
			detmath.Lerp(p.at(of+perlinYWrap), p.at(of+perlinYWrap+1), rxf),
			ryf)
		of += perlinZWrap
		n2 := detmath.Lerp(
			detmath.Lerp(p.at(of), p.at(of+1), rxf),
			detmath.Lerp(p.at(of+perlinYWrap), p.at(of+perlinYWrap+1), rxf),
			ryf)
		n3 := detmath.Lerp(n1, n2, detmath.Fade(zf))

		r += float64(n3 * ampl)
		ampl *= ampFalloff

		xi, xf = xi<<1, xf*2
		yi, yf = yi<<1, yf*2
		zi, zf = zi<<1, zf*2
		if xf >= 1 {
			xi++
			xf--
		}
		if yf >= 1 {
			yi++
			yf--
		}
		if zf >= 1 {
			zi++
			zf--
		}
	}
	return r
}

// Noise2 samples the z=0 plane.
func (p *Perlin) Noise2(x, y float64) float64 { return p.Noise(x, y, 0) }

// Noise1 samples the x axis.
func (p *Perlin) Noise1(x float64) float64 { return p.Noise(x, 0, 0) }

func (p *Perlin) at(i uint32) float64 { return p.table[i&perlinSize] }

// split returns the lattice cell and the fractional offset of v >= 0.
// Coordinates past 2^32 keep only their low lattice bits, which is all the
// table lookup ever reads.
func split(v float64) (uint32, float64) {
	fl := math.Floor(v)
	f := v - fl
	return uint32(uint64(math.Mod(fl, 1<<32))), f
}
