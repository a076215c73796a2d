package pixel

// NewChecker creates a checkerboard buffer with square cells of the given
// size, alternating c1 and c2 starting with c1 at the origin.
func NewChecker(width, height, size int, c1, c2 Pixel) *Buffer {
	if size <= 0 {
		size = 1
	}
	b := New(width, height)
	for y := range height {
		for x := range width {
			if (x/size+y/size)%2 == 0 {
				b.pixels[x+y*width] = c1
			} else {
				b.pixels[x+y*width] = c2
			}
		}
	}
	b.dirty = true
	return b
}
