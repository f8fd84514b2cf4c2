package frost

import "github.com/chewxy/math32"

// BlurStrategy is the sampling scheme chosen for a blur radius.
type BlurStrategy int

// Blur strategies in order of increasing radius.
const (
	BlurPassThrough BlurStrategy = iota
	BlurBox
	BlurRing
)

// String returns the strategy name.
func (s BlurStrategy) String() string {
	switch s {
	case BlurBox:
		return "box"
	case BlurRing:
		return "ring"
	default:
		return "pass-through"
	}
}

const (
	// blurPassThroughRadius is the radius below which no blur is applied.
	blurPassThroughRadius = 0.05
	// blurRingRadius is the radius from which the ring sampler is used.
	blurRingRadius = 3.0
	// boxStep is the box tap spacing as a fraction of the radius. It keeps
	// the box spread just below the spread of the smallest ring kernel.
	boxStep = 0.45

	// ringReach scales the radius into the outermost ring distance.
	ringReach = 1.5
	// ringFalloff is k in the ring weight exp(-f^2 k).
	ringFalloff = 2.5
	// ringCenterWeight is the weight of the unshifted center tap.
	ringCenterWeight = 0.5
	// ringGolden rotates successive rings by the golden ratio conjugate.
	ringGolden = 0.618034
	// ringRadiusPhase adds a radius-dependent rotation so neighboring radii
	// do not share tap directions.
	ringRadiusPhase = 0.1

	minRings      = 3
	maxRings      = 20
	minDirections = 8
	maxDirections = 16
	// ringSubstepSpacing is the largest radial gap in pixels between taps
	// before intermediate radii are inserted.
	ringSubstepSpacing = 3.0
	maxRingSubsteps    = 3

	// blurWeightFloor keeps normalization finite.
	blurWeightFloor = 1e-4
)

// MaxBlurTaps is the largest number of taps any kernel uses.
const MaxBlurTaps = 1 + maxRings*(maxRingSubsteps+1)*maxDirections

// BlurStrategyFor returns the strategy used for radius r.
func BlurStrategyFor(r float32) BlurStrategy {
	switch {
	case !(r >= blurPassThroughRadius): // also catches NaN
		return BlurPassThrough
	case r < blurRingRadius:
		return BlurBox
	default:
		return BlurRing
	}
}

// blurTap is one sample of a kernel: an offset in pixels and a normalized
// weight.
type blurTap struct {
	offset Vec2
	weight float32
}

// BlurKernel is a precomputed blur approximation for one radius. Its taps
// are normalized so the weights sum to one.
type BlurKernel struct {
	radius   float32
	strategy BlurStrategy
	taps     []blurTap
}

// RingLayout describes the ring sampler parameters for a radius.
type RingLayout struct {
	Reach      float32
	Rings      int
	Directions int
	Substeps   int
}

// RingLayoutFor returns the ring sampler layout for radius r. Ring and
// direction counts scale with sqrt(r) and are capped, which bounds the
// worst-case tap count for arbitrarily large radii.
func RingLayoutFor(r float32) RingLayout {
	sq := math32.Sqrt(r)
	l := RingLayout{
		Reach:      r * ringReach,
		Rings:      clampInt(int(math32.Ceil(2*sq)), minRings, maxRings),
		Directions: clampInt(int(math32.Ceil(3*sq)), minDirections, maxDirections),
	}
	spacing := l.Reach / float32(l.Rings)
	l.Substeps = clampInt(int(math32.Ceil(spacing/ringSubstepSpacing))-1, 0, maxRingSubsteps)
	return l
}

// NewBlurKernel builds the kernel for radius r. Negative and NaN radii
// resolve to a pass-through kernel.
func NewBlurKernel(r float32) *BlurKernel {
	k := &BlurKernel{radius: r, strategy: BlurStrategyFor(r)}
	switch k.strategy {
	case BlurPassThrough:
		k.radius = 0
		k.taps = []blurTap{{weight: 1}}
	case BlurBox:
		k.taps = boxTaps(r)
	case BlurRing:
		k.taps = ringTaps(r)
	}
	return k
}

// boxTaps returns a 3x3 box with taps boxStep*r pixels apart.
func boxTaps(r float32) []blurTap {
	step := r * boxStep
	taps := make([]blurTap, 0, 9)
	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			taps = append(taps, blurTap{
				offset: Vec2{X: float32(x) * step, Y: float32(y) * step},
				weight: 1.0 / 9,
			})
		}
	}
	return taps
}

// ringTaps lays out a center tap plus concentric rings of taps. Each radial
// step sits at the midpoint of its band and carries a Gaussian-like weight
// shared evenly by its directions. Intermediate radial steps reuse the
// rotation of the ring they belong to.
func ringTaps(r float32) []blurTap {
	l := RingLayoutFor(r)
	steps := l.Rings * (l.Substeps + 1)
	taps := make([]blurTap, 0, 1+steps*l.Directions)
	taps = append(taps, blurTap{weight: ringCenterWeight})
	total := float32(ringCenterWeight)

	dirs := float32(l.Directions)
	for i := 1; i <= steps; i++ {
		f := (float32(i) - 0.5) / float32(steps)
		w := math32.Exp(-f * f * ringFalloff)
		ring := (i + l.Substeps) / (l.Substeps + 1)
		rot := fract(float32(ring)*ringGolden + r*ringRadiusPhase)
		dist := f * l.Reach
		for j := range l.Directions {
			theta := (float32(j) + rot) * 2 * math32.Pi / dirs
			taps = append(taps, blurTap{
				offset: Vec2{X: math32.Cos(theta) * dist, Y: math32.Sin(theta) * dist},
				weight: w / dirs,
			})
		}
		total += w
	}

	inv := 1 / math32.Max(total, blurWeightFloor)
	for i := range taps {
		taps[i].weight *= inv
	}
	return taps
}

// Radius returns the radius the kernel was built for.
func (k *BlurKernel) Radius() float32 { return k.radius }

// Strategy returns the sampling scheme in use.
func (k *BlurKernel) Strategy() BlurStrategy { return k.strategy }

// Taps returns the number of samples per evaluation.
func (k *BlurKernel) Taps() int { return len(k.taps) }

// Sample blurs src around the normalized coordinate uv. texel is the size
// of one pixel in src's normalized coordinates.
func (k *BlurKernel) Sample(src Sampler, uv, texel Vec2) RGBA {
	if len(k.taps) == 1 {
		return src.Sample(uv.X, uv.Y)
	}
	var acc RGBA
	for _, t := range k.taps {
		c := src.Sample(uv.X+t.offset.X*texel.X, uv.Y+t.offset.Y*texel.Y)
		acc = acc.Add(c.Scale(t.weight))
	}
	return acc
}

// Spread returns the RMS distance in pixels of the kernel taps from the
// center, weighted by tap weight. It grows monotonically with the radius.
func (k *BlurKernel) Spread() float32 {
	var m float32
	for _, t := range k.taps {
		m += t.weight * (t.offset.X*t.offset.X + t.offset.Y*t.offset.Y)
	}
	return math32.Sqrt(m)
}
