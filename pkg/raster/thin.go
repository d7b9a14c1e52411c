package raster

// Thin reduces the foreground to a one-pixel-wide skeleton with the
// Zhang-Suen algorithm. The output is a subset of the input foreground,
// connected components stay connected, and isolated single pixels
// survive unchanged. The input grid is not modified.
func Thin(g *Grid) *Grid {
	out := g.Clone()
	for {
		removed := thinPass(out, 0)
		removed += thinPass(out, 1)
		if removed == 0 {
			return out
		}
	}
}

// thinPass runs one Zhang-Suen sub-iteration and returns the number of
// pixels deleted. Deletions are collected first and applied afterwards
// so every test in a pass sees the same grid.
func thinPass(g *Grid, phase int) int {
	var deletions [][2]int
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !g.At(r, c) {
				continue
			}
			// Neighbors clockwise from north: p2..p9.
			n := [8]bool{
				g.At(r-1, c), g.At(r-1, c+1), g.At(r, c+1), g.At(r+1, c+1),
				g.At(r+1, c), g.At(r+1, c-1), g.At(r, c-1), g.At(r-1, c-1),
			}
			count := 0
			for _, v := range n {
				if v {
					count++
				}
			}
			if count < 2 || count > 6 {
				continue
			}
			transitions := 0
			for i := 0; i < 8; i++ {
				if !n[i] && n[(i+1)%8] {
					transitions++
				}
			}
			if transitions != 1 {
				continue
			}
			// n[0]=p2 n[2]=p4 n[4]=p6 n[6]=p8
			if phase == 0 {
				if (n[0] && n[2] && n[4]) || (n[2] && n[4] && n[6]) {
					continue
				}
			} else {
				if (n[0] && n[2] && n[6]) || (n[0] && n[4] && n[6]) {
					continue
				}
			}
			deletions = append(deletions, [2]int{r, c})
		}
	}
	for _, d := range deletions {
		g.Clear(d[0], d[1])
	}
	return len(deletions)
}
