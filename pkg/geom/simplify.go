package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// SimplifyLine reduces a line with Douglas-Peucker at the given
// tolerance and re-snaps the survivors to the grid. A tolerance of zero
// returns the input unchanged.
func SimplifyLine(ls orb.LineString, tolerance float64) orb.LineString {
	if tolerance <= 0 || len(ls) < 3 {
		return ls
	}
	reduced := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone())
	out, ok := reduced.(orb.LineString)
	if !ok {
		return ls
	}
	return SnapLine(out)
}

// SimplifyLines applies SimplifyLine to every member, dropping lines
// that collapse below two vertices.
func SimplifyLines(lines []orb.LineString, tolerance float64) []orb.LineString {
	if tolerance <= 0 {
		return lines
	}
	out := make([]orb.LineString, 0, len(lines))
	for _, ls := range lines {
		s := SimplifyLine(ls, tolerance)
		if len(s) < 2 {
			continue
		}
		out = append(out, s)
	}
	return out
}
