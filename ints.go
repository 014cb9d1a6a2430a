package bdelta

// kiB is the kibibyte unit, used to size scratch buffers.
const kiB = 1 << 10

// iverson returns 1 or 0 depending on whether f is true or false.
func iverson(f bool) int {
	if f {
		return 1
	}
	return 0
}

// doz computes the positive difference or zero — used to clamp a
// reference-side gap length when two matches overlap on the reference
// side (spec §4.7 edge case).
func doz(x, y int) int {
	return (x - y) & (-iverson(x >= y))
}

// iabs returns the absolute value of x, used by the pass engine's
// locality score (spec §4.5).
func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
