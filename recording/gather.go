package recording

// SelectColumns gathers the given sample columns of a block into a freshly
// allocated (channels, len(indices)) block. Indices may repeat and appear
// in any order; out-of-range indices panic.
func SelectColumns(block [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(block))
	for ch, row := range block {
		cols := make([]float64, len(indices))
		for i, idx := range indices {
			cols[i] = row[idx]
		}
		out[ch] = cols
	}
	return out
}

// ConcatColumns joins blocks along the sample axis in order. All blocks
// must share one channel count; the result is freshly allocated.
func ConcatColumns(blocks [][][]float64) [][]float64 {
	if len(blocks) == 0 {
		return nil
	}
	total := 0
	for _, b := range blocks {
		if len(b) > 0 {
			total += len(b[0])
		}
	}
	out := make([][]float64, len(blocks[0]))
	for ch := range out {
		row := make([]float64, 0, total)
		for _, b := range blocks {
			row = append(row, b[ch]...)
		}
		out[ch] = row
	}
	return out
}
