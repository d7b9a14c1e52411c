package geom

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// miterLimit matches the reference buffering behavior: joints whose
	// miter point would sit further than limit*radius from the vertex
	// are beveled instead.
	miterLimit = 5.0

	// quadSegs is the number of arc segments per quarter circle when
	// approximating round caps and joins.
	quadSegs = 8

	// thinRadius is the corridor half-width applied to isolated lines in
	// segmented mode, just wide enough to survive rasterization.
	thinRadius = 0.612
)

// Buffer inflates each line into a corridor of half-width radius with
// miter joins and round end caps, then unions everything into the
// minimal disjoint polygon set. Empty input produces an empty collection.
func Buffer(lines []orb.LineString, radius float64) Collection {
	var pieces []orb.Polygon
	for _, ls := range lines {
		pieces = append(pieces, miterPieces(ls, radius)...)
	}
	return Union(pieces)
}

// SegmentedBuffer is the corridor variant that keeps isolated lines
// thin. Lines whose center section shares a buffered zone with another
// line get the full-radius round corridor; all remaining lines get a
// thin miter corridor, so single carriageways skeletonize close to
// their own geometry while parallel bundles still melt together.
func SegmentedBuffer(lines []orb.LineString, radius float64) Collection {
	offset := math.Sqrt(1.5) * radius

	var centrePieces []orb.Polygon
	for _, ls := range lines {
		centre := lineSubstring(ls, offset, Length(ls)-offset)
		if len(centre) < 2 {
			continue
		}
		centrePieces = append(centrePieces, roundPieces(centre, radius)...)
	}
	zones := Union(centrePieces)

	shared := make([]bool, len(lines))
	for _, zone := range zones.Polygons() {
		var touching []int
		for i, ls := range lines {
			if lineTouchesPolygon(ls, zone) {
				touching = append(touching, i)
			}
		}
		if len(touching) >= 2 {
			for _, i := range touching {
				shared[i] = true
			}
		}
	}

	var pieces []orb.Polygon
	for i, ls := range lines {
		if shared[i] {
			pieces = append(pieces, roundPieces(ls, radius)...)
		} else {
			pieces = append(pieces, miterPieces(ls, thinRadius)...)
		}
	}
	return Union(pieces)
}

// miterPieces decomposes one line's miter-join round-cap corridor into
// simple convex pieces: a rectangle per segment, a wedge per joint on
// the outer side of the turn, and a half disc per end.
func miterPieces(ls orb.LineString, radius float64) []orb.Polygon {
	segs := nonDegenerateSegments(ls)
	if len(segs) == 0 {
		return nil
	}

	var pieces []orb.Polygon
	for _, s := range segs {
		pieces = append(pieces, segmentRect(s[0], s[1], radius))
	}
	for i := 0; i+1 < len(segs); i++ {
		if w := miterWedge(segs[i][0], segs[i][1], segs[i+1][1], radius); w != nil {
			pieces = append(pieces, w)
		}
	}
	first := segs[0]
	last := segs[len(segs)-1]
	pieces = append(pieces, capDisc(first[0], unitDir(first[0], first[1]), radius, true))
	pieces = append(pieces, capDisc(last[1], unitDir(last[0], last[1]), radius, false))
	return pieces
}

// roundPieces decomposes one line's round-join round-cap corridor:
// a rectangle per segment plus a full disc at every vertex.
func roundPieces(ls orb.LineString, radius float64) []orb.Polygon {
	segs := nonDegenerateSegments(ls)
	if len(segs) == 0 {
		return nil
	}
	var pieces []orb.Polygon
	for _, s := range segs {
		pieces = append(pieces, segmentRect(s[0], s[1], radius))
	}
	pieces = append(pieces, disc(segs[0][0], radius))
	for _, s := range segs {
		pieces = append(pieces, disc(s[1], radius))
	}
	return pieces
}

func nonDegenerateSegments(ls orb.LineString) [][2]orb.Point {
	var segs [][2]orb.Point
	for i := 0; i+1 < len(ls); i++ {
		if ls[i].Equal(ls[i+1]) {
			continue
		}
		segs = append(segs, [2]orb.Point{ls[i], ls[i+1]})
	}
	return segs
}

func unitDir(a, b orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	l := math.Hypot(dx, dy)
	return orb.Point{dx / l, dy / l}
}

// leftNormal rotates a unit tangent 90 degrees counter-clockwise.
func leftNormal(t orb.Point) orb.Point {
	return orb.Point{-t[1], t[0]}
}

func segmentRect(a, b orb.Point, r float64) orb.Polygon {
	n := leftNormal(unitDir(a, b))
	ring := orb.Ring{
		{a[0] + n[0]*r, a[1] + n[1]*r},
		{b[0] + n[0]*r, b[1] + n[1]*r},
		{b[0] - n[0]*r, b[1] - n[1]*r},
		{a[0] - n[0]*r, a[1] - n[1]*r},
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// miterWedge fills the outer gap at joint b between segments ab and bc.
// Collinear joints need no wedge; joints sharper than the miter limit
// are beveled.
func miterWedge(a, b, c orb.Point, r float64) orb.Polygon {
	t1 := unitDir(a, b)
	t2 := unitDir(b, c)
	turn := t1[0]*t2[1] - t1[1]*t2[0]
	if math.Abs(turn) < 1e-12 {
		return nil
	}
	side := 1.0
	if turn > 0 {
		side = -1.0
	}

	n1 := leftNormal(t1)
	n2 := leftNormal(t2)
	c1 := orb.Point{b[0] + n1[0]*r*side, b[1] + n1[1]*r*side}
	c2 := orb.Point{b[0] + n2[0]*r*side, b[1] + n2[1]*r*side}

	cosT := t1[0]*t2[0] + t1[1]*t2[1]
	if cosT > 1 {
		cosT = 1
	} else if cosT < -1 {
		cosT = -1
	}
	sinHalf := math.Sqrt((1 + cosT) / 2)

	var ring orb.Ring
	if sinHalf >= 1.0/miterLimit && sinHalf > 0 {
		bx := n1[0]*side + n2[0]*side
		by := n1[1]*side + n2[1]*side
		bl := math.Hypot(bx, by)
		m := orb.Point{b[0] + bx/bl*(r/sinHalf), b[1] + by/bl*(r/sinHalf)}
		ring = orb.Ring{b, c1, m, c2}
	} else {
		ring = orb.Ring{b, c1, c2}
	}
	if math.Abs(RingArea(ring)) < 1e-12 {
		return nil
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// capDisc builds the half disc closing a line end. For the start cap the
// tangent points into the line; for the end cap it points out of it.
func capDisc(center, tangent orb.Point, r float64, start bool) orb.Polygon {
	t := tangent
	if start {
		t = orb.Point{-t[0], -t[1]}
	}
	// Sweep counter-clockwise from the right side of t to the left,
	// passing through t itself.
	begin := math.Atan2(-t[0], t[1])
	steps := 2 * quadSegs
	ring := make(orb.Ring, 0, steps+2)
	for i := 0; i <= steps; i++ {
		a := begin + math.Pi*float64(i)/float64(steps)
		ring = append(ring, orb.Point{center[0] + r*math.Cos(a), center[1] + r*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

func disc(center orb.Point, r float64) orb.Polygon {
	steps := 4 * quadSegs
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		ring = append(ring, orb.Point{center[0] + r*math.Cos(a), center[1] + r*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// lineSubstring returns the section of ls between arc lengths from and
// to. An empty line is returned when the window is empty.
func lineSubstring(ls orb.LineString, from, to float64) orb.LineString {
	if len(ls) < 2 || to <= from {
		return orb.LineString{}
	}
	var out orb.LineString
	var walked float64
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		segLen := math.Hypot(b[0]-a[0], b[1]-a[1])
		if segLen == 0 {
			continue
		}
		next := walked + segLen
		if next <= from {
			walked = next
			continue
		}
		if walked >= to {
			break
		}
		start := a
		if walked < from {
			start = interpolate(a, b, (from-walked)/segLen)
		}
		end := b
		if next > to {
			end = interpolate(a, b, (to-walked)/segLen)
		}
		if len(out) == 0 {
			out = append(out, start)
		}
		if !out[len(out)-1].Equal(end) {
			out = append(out, end)
		}
		walked = next
	}
	if len(out) < 2 {
		return orb.LineString{}
	}
	return out
}

func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

// lineTouchesPolygon reports whether any part of ls lies in or crosses
// the polygon.
func lineTouchesPolygon(ls orb.LineString, poly orb.Polygon) bool {
	for _, p := range ls {
		if PolygonContains(poly, p) {
			return true
		}
	}
	for i := 0; i+1 < len(ls); i++ {
		for _, ring := range poly {
			n := len(ring)
			for j := 0; j < n-1; j++ {
				if SegmentsIntersect(ls[i], ls[i+1], ring[j], ring[j+1]) {
					return true
				}
			}
		}
	}
	return false
}
