package synth

import "math"

// Default seeds for each dataset family.
const (
	DashboardSeed  uint32 = 12345
	DatasetSeed    uint32 = 54321
	PredictiveSeed uint32 = 24680
)

// Generator is a mulberry32 pseudo-random stream. It is not safe for
// concurrent use; create one per goroutine.
type Generator struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	g.state += 0x6D2B79F5
	a := g.state
	t := (a ^ a>>15) * (1 | a)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return float64(t^t>>14) / 4294967296
}

// InRange returns a uniform value in [min, max).
func (g *Generator) InRange(min, max float64) float64 {
	return min + g.Float64()*(max-min)
}

// Normal returns a normally distributed value using the Box-Muller
// transform. A zero first draw is redrawn so the logarithm stays finite.
func (g *Generator) Normal(mean, std float64) float64 {
	u1 := g.Float64()
	for u1 == 0 {
		u1 = g.Float64()
	}
	u2 := g.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z*std + mean
}

// Intn returns a uniform integer in [min, max).
func (g *Generator) Intn(min, max int) int {
	return int(math.Floor(g.InRange(float64(min), float64(max))))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
