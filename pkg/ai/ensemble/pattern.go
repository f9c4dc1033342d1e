package ensemble

// patternOpinion treats the trailing memory entries as a candidate period and
// scores how often it recurs over at most two more periods further back.
// A pattern repeated across both periods scores 1.
func patternOpinion(data []float64, memory int) float64 {
	n := len(data)
	if memory <= 0 || n < memory {
		return 0
	}

	pattern := make([]float64, memory)
	copy(pattern, data[n-memory:])
	// The entry one period back predicts the next one.
	prediction := pattern[0]

	var score float64
	for ind := n - memory - 1; ind >= max(0, n-3*memory); ind-- {
		if pattern[memory-1] == data[ind] {
			score++
		}
		last := pattern[memory-1]
		copy(pattern[1:], pattern[:memory-1])
		pattern[0] = last
	}

	return prediction * score / float64(2*memory)
}
