package search

// Preview returns a bounded context window around a hit: up to
// PreviewRadius characters before the hit, the hit itself, and up to
// PreviewRadius characters after, clipped at the line boundaries.
// Out-of-range offsets are clamped rather than panicking.
func Preview(line string, startCol, length int) string {
	if len(line) == 0 {
		return ""
	}
	if startCol < 0 {
		startCol = 0
	}
	if startCol > len(line) {
		startCol = len(line)
	}
	if length < 0 {
		length = 0
	}

	start := startCol - PreviewRadius
	if start < 0 {
		start = 0
	}
	end := startCol + length + PreviewRadius
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
