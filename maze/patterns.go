package maze

import (
	"math"
	"math/rand"
)

// PatternType selects the base-structure builder used for a maze instance.
// The choice is made once, at generation time.
type PatternType int

const (
	// PatternRandom picks uniformly among the four concrete patterns.
	PatternRandom PatternType = iota
	// PatternSpanningTree carves a randomized Prim-style tree.
	PatternSpanningTree
	// PatternGeometric lays a lattice of corridors with diagonal and
	// zigzag connectors.
	PatternGeometric
	// PatternConcentric traces rings around the maze center joined by
	// radial spokes.
	PatternConcentric
	// PatternSymmetric mirrors a modular-rule quadrant across both
	// midlines.
	PatternSymmetric
)

// String implements fmt.Stringer.
func (p PatternType) String() string {
	switch p {
	case PatternSpanningTree:
		return "spanning-tree"
	case PatternGeometric:
		return "geometric"
	case PatternConcentric:
		return "concentric"
	case PatternSymmetric:
		return "symmetric"
	default:
		return "random"
	}
}

// generator is the common fill contract every pattern implements. None of
// the patterns is required to produce full connectivity on its own; the
// solvability validator is the sole connectivity guarantee.
type generator interface {
	fill(g *Grid, rng *rand.Rand)
}

// builder returns the concrete generator for the pattern, resolving
// PatternRandom with the supplied source.
func (p PatternType) builder(rng *rand.Rand) (PatternType, generator) {
	if p == PatternRandom {
		p = PatternType(1 + rng.Intn(4))
	}
	switch p {
	case PatternGeometric:
		return p, geometric{}
	case PatternConcentric:
		return p, concentric{}
	case PatternSymmetric:
		return p, symmetric{}
	default:
		return PatternSpanningTree, spanningTree{}
	}
}

const corridorSpacing = 3

// geometric lays full-span corridors every corridorSpacing cells, then
// decorates the lattice with diagonal connectors, zigzags, and randomized
// junction arms at intersections.
type geometric struct{}

func (geometric) fill(g *Grid, rng *rand.Rand) {
	w, h := g.Width(), g.Height()

	for y := 0; y < h; y += corridorSpacing {
		for x := 0; x < w; x++ {
			g.Set(Point{X: x, Y: y}, false)
		}
	}
	for x := 0; x < w; x += corridorSpacing {
		for y := 0; y < h; y++ {
			g.Set(Point{X: x, Y: y}, false)
		}
	}

	// Diagonal connectors at periodic offsets.
	for y := 1; y < h; y += corridorSpacing * 2 {
		for x := 1; x < w; x += corridorSpacing * 2 {
			for step := 0; step < corridorSpacing; step++ {
				g.Set(Point{X: x + step, Y: y + step}, false)
			}
		}
	}

	// A few zigzag runs between corridor rows.
	zigzags := 2 + rng.Intn(3)
	for i := 0; i < zigzags; i++ {
		p := Point{X: rng.Intn(w), Y: rng.Intn(h)}
		horizontal := rng.Intn(2) == 0
		for step := 0; step < corridorSpacing*2 && g.InBounds(p); step++ {
			g.Set(p, false)
			if horizontal {
				p.X++
			} else {
				p.Y++
			}
			horizontal = !horizontal
		}
	}

	// Each lattice intersection independently sprouts 0-4 junction arms.
	for y := 0; y < h; y += corridorSpacing {
		for x := 0; x < w; x += corridorSpacing {
			for _, d := range cardinals {
				if rng.Intn(2) == 0 {
					continue
				}
				armLen := 1 + rng.Intn(2)
				for step := 1; step <= armLen; step++ {
					g.Set(Point{X: x + d.X*step, Y: y + d.Y*step}, false)
				}
			}
		}
	}
}

// concentric traces rings at fixed radius increments around the maze
// center, with radial spokes and random ring-to-ring connectors.
type concentric struct{}

const (
	ringSpacing = 3
	spokeCount  = 6
)

func (concentric) fill(g *Grid, rng *rand.Rand) {
	w, h := g.Width(), g.Height()
	cx, cy := float64(w)/2, float64(h)/2
	maxRadius := math.Min(cx, cy)

	g.Set(Point{X: int(cx), Y: int(cy)}, false)

	for r := float64(ringSpacing); r <= maxRadius; r += ringSpacing {
		// Sample densely enough that adjacent ring cells touch.
		samples := int(2 * math.Pi * r * 2)
		for i := 0; i < samples; i++ {
			angle := 2 * math.Pi * float64(i) / float64(samples)
			p := Point{
				X: int(math.Round(cx + r*math.Cos(angle))),
				Y: int(math.Round(cy + r*math.Sin(angle))),
			}
			g.Set(p, false)
		}
	}

	for i := 0; i < spokeCount; i++ {
		angle := 2 * math.Pi * float64(i) / spokeCount
		carveRay(g, cx, cy, angle, 0, maxRadius)
	}

	// Short connectors between adjacent rings at random angles.
	connectors := 2 + rng.Intn(4)
	for i := 0; i < connectors; i++ {
		angle := rng.Float64() * 2 * math.Pi
		inner := float64(ringSpacing) * float64(1+rng.Intn(int(maxRadius)/ringSpacing+1))
		carveRay(g, cx, cy, angle, inner, inner+ringSpacing)
	}
}

// carveRay opens cells along a ray from the center between two radii.
func carveRay(g *Grid, cx, cy, angle, from, to float64) {
	for r := from; r <= to; r += 0.5 {
		p := Point{
			X: int(math.Round(cx + r*math.Cos(angle))),
			Y: int(math.Round(cy + r*math.Sin(angle))),
		}
		g.Set(p, false)
	}
}

// symmetric fills one quadrant with a small modular-arithmetic rule, then
// mirrors it across both midlines for four-way symmetry. Full-span lines
// keep the quadrants from being isolated from each other.
type symmetric struct{}

func (symmetric) fill(g *Grid, rng *rand.Rand) {
	w, h := g.Width(), g.Height()
	rule := rng.Intn(3)

	open := func(x, y int) bool {
		switch rule {
		case 0:
			return x%3 == 0 && y%2 == 0
		case 1:
			return x == y || x%4 == 0
		default:
			return (x+y)%3 == 0
		}
	}

	for x := 0; x <= (w-1)/2; x++ {
		for y := 0; y <= (h-1)/2; y++ {
			if !open(x, y) {
				continue
			}
			g.Set(Point{X: x, Y: y}, false)
			g.Set(Point{X: w - 1 - x, Y: y}, false)
			g.Set(Point{X: x, Y: h - 1 - y}, false)
			g.Set(Point{X: w - 1 - x, Y: h - 1 - y}, false)
		}
	}

	// Random full-span connecting lines across the mirror seams.
	lines := 2 + rng.Intn(3)
	for i := 0; i < lines; i++ {
		if rng.Intn(2) == 0 {
			y := rng.Intn(h)
			for x := 0; x < w; x++ {
				g.Set(Point{X: x, Y: y}, false)
			}
		} else {
			x := rng.Intn(w)
			for y := 0; y < h; y++ {
				g.Set(Point{X: x, Y: y}, false)
			}
		}
	}
}
