package dropper

// Uniform is the subset of *rand.Rand a Bernoulli trial needs.
type Uniform interface {
	Float64() float64
}

// Bernoulli implements a simple u<p break decision. It is used to decide
// whether a probe at or below the critical value is misreported as a break.
type Bernoulli struct {
	p   float64
	rng Uniform
}

func New(p float64, rng Uniform) *Bernoulli { return &Bernoulli{p: p, rng: rng} }

// Drop reports whether the trial fired. It consumes exactly one draw from
// rng, including at p<=0 and p>=1.
func (b *Bernoulli) Drop() bool {
	u := b.rng.Float64()
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return u < b.p
}
