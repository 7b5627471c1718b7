package maze

import "math/rand"

// refiner layers rule-based embellishment onto a freshly built base
// structure: open chambers, standalone pillars and archways, widened
// corridors, and a local noise pass. Every step leaves the exit's
// exclusion zone untouched.
type refiner struct {
	g    *Grid
	rng  *rand.Rand
	skip func(Point) bool // exclusion-zone test
}

func (r *refiner) run() {
	r.carveChambers()
	r.placeFeatures()
	r.widenCorridors()
	r.applyNoise()
}

// carveChambers clears 2-4 rectangular rooms at random centers, dropping a
// pillar or two inside the larger ones.
func (r *refiner) carveChambers() {
	chambers := 2 + r.rng.Intn(3)
	for i := 0; i < chambers; i++ {
		center := r.randomInterior()
		if r.skip(center) {
			continue
		}
		cw := 3 + r.rng.Intn(3)
		ch := 3 + r.rng.Intn(3)

		for x := center.X - cw/2; x <= center.X+cw/2; x++ {
			for y := center.Y - ch/2; y <= center.Y+ch/2; y++ {
				p := Point{X: x, Y: y}
				if !r.skip(p) {
					r.g.Set(p, false)
				}
			}
		}

		if cw*ch >= 12 {
			pillars := 1 + r.rng.Intn(2)
			for j := 0; j < pillars; j++ {
				p := Point{
					X: center.X + r.rng.Intn(cw) - cw/2,
					Y: center.Y + r.rng.Intn(ch) - ch/2,
				}
				if !r.skip(p) {
					r.g.Set(p, true)
				}
			}
		}
	}
}

// placeFeatures scatters standalone pillars and 1-wide archway gateways.
func (r *refiner) placeFeatures() {
	area := r.g.Width() * r.g.Height()

	// Pillars only land on open cells with enough surrounding open space
	// that nothing gets cut off.
	for i := 0; i < area/20; i++ {
		p := r.randomInterior()
		if r.skip(p) || !r.g.IsPath(p) {
			continue
		}
		if r.g.OpenNeighborCount(p) >= 3 {
			r.g.Set(p, true)
		}
	}

	// Archways: a 3-cell run along a random axis where both endpoints are
	// open becomes wall-path-wall, a 1-wide gateway.
	for i := 0; i < area/30; i++ {
		a := r.randomInterior()
		axis := cardinals[1+r.rng.Intn(2)] // east or south
		mid := Point{X: a.X + axis.X, Y: a.Y + axis.Y}
		b := Point{X: a.X + 2*axis.X, Y: a.Y + 2*axis.Y}
		if r.skip(a) || r.skip(mid) || r.skip(b) {
			continue
		}
		if r.g.IsPath(a) && r.g.IsPath(b) {
			r.g.Set(a, true)
			r.g.Set(b, true)
			r.g.Set(mid, false)
		}
	}
}

// widenCorridors extends straight runs from existing open cells, usually
// clearing the perpendicular neighbors along the way as well.
func (r *refiner) widenCorridors() {
	area := r.g.Width() * r.g.Height()
	for i := 0; i < area/15; i++ {
		p := r.randomInterior()
		if !r.g.IsPath(p) {
			continue
		}
		dir := cardinals[r.rng.Intn(4)]
		perp := Point{X: dir.Y, Y: dir.X}
		length := 2 + r.rng.Intn(4)

		for step := 0; step < length; step++ {
			cell := Point{X: p.X + dir.X*step, Y: p.Y + dir.Y*step}
			if !r.g.InBounds(cell) {
				break
			}
			if !r.skip(cell) {
				r.g.Set(cell, false)
			}
			if r.rng.Float64() < 0.7 {
				for _, side := range [2]Point{
					{X: cell.X + perp.X, Y: cell.Y + perp.Y},
					{X: cell.X - perp.X, Y: cell.Y - perp.Y},
				} {
					if !r.skip(side) {
						r.g.Set(side, false)
					}
				}
			}
		}
	}
}

// applyNoise samples interior cells and flips the ones that look wrong
// locally: walls surrounded by open space open up, open dead-end stubs
// fill in. A path cell is only walled off if every open neighbor keeps at
// least one other open neighbor, so nothing gets stranded.
func (r *refiner) applyNoise() {
	area := r.g.Width() * r.g.Height()
	for i := 0; i < area/10; i++ {
		p := r.randomInterior()
		if r.skip(p) {
			continue
		}
		open := r.g.OpenNeighborCount(p)

		if r.g.IsWall(p) {
			if open >= 3 {
				r.g.Set(p, false)
			}
			continue
		}

		if open <= 1 && r.rng.Float64() < 0.3 && !r.strands(p) {
			r.g.Set(p, true)
		}
	}
}

// strands reports whether walling off p would leave any of its open
// neighbors without another open neighbor of its own.
func (r *refiner) strands(p Point) bool {
	for _, n := range r.g.OrthogonalNeighbors(p) {
		if !r.g.IsPath(n) {
			continue
		}
		others := 0
		for _, nn := range r.g.OrthogonalNeighbors(n) {
			if nn != p && r.g.IsPath(nn) {
				others++
			}
		}
		if others == 0 {
			return true
		}
	}
	return false
}

// randomInterior picks a uniformly random cell strictly inside the border.
func (r *refiner) randomInterior() Point {
	w, h := r.g.Width(), r.g.Height()
	if w <= 2 || h <= 2 {
		return Point{X: r.rng.Intn(w), Y: r.rng.Intn(h)}
	}
	return Point{X: 1 + r.rng.Intn(w-2), Y: 1 + r.rng.Intn(h-2)}
}
