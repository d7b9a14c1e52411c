package raster

// FillSmallHoles flips background connected components of at most
// maxArea cells to foreground and returns the number of holes filled.
// Components touching the grid border are the outside, never holes.
// Background connectivity is 4-connected, matching the complement of
// the 8-connected foreground.
func FillSmallHoles(g *Grid, maxArea int) int {
	if maxArea <= 0 {
		return 0
	}
	visited := make([]bool, g.Rows*g.Cols)
	queue := make([][2]int, 0, maxArea*4)
	filled := 0

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(r, c) || visited[r*g.Cols+c] {
				continue
			}

			// BFS over one background component. Stop expanding once
			// it grows past maxArea or touches the border; it is then
			// the outside or too large to be a sliver.
			queue = queue[:0]
			queue = append(queue, [2]int{r, c})
			visited[r*g.Cols+c] = true
			component := [][2]int{{r, c}}
			border := r == 0 || r == g.Rows-1 || c == 0 || c == g.Cols-1
			small := true

			for len(queue) > 0 {
				cell := queue[0]
				queue = queue[1:]
				for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr, nc := cell[0]+d[0], cell[1]+d[1]
					if nr < 0 || nr >= g.Rows || nc < 0 || nc >= g.Cols {
						continue
					}
					if g.At(nr, nc) || visited[nr*g.Cols+nc] {
						continue
					}
					visited[nr*g.Cols+nc] = true
					queue = append(queue, [2]int{nr, nc})
					if small {
						component = append(component, [2]int{nr, nc})
					}
					if nr == 0 || nr == g.Rows-1 || nc == 0 || nc == g.Cols-1 {
						border = true
					}
					if len(component) > maxArea {
						small = false
					}
				}
			}

			if small && !border && len(component) <= maxArea {
				for _, cell := range component {
					g.Set(cell[0], cell[1])
				}
				filled++
			}
		}
	}
	return filled
}
