package ensemble

// biasOpinion is the mean of the trailing memory entries, catching an opponent
// who favours one side overall.
func biasOpinion(data []float64, memory int) float64 {
	n := min(memory, len(data))
	if n <= 0 {
		return 0
	}
	var sum float64
	for _, v := range data[len(data)-n:] {
		sum += v
	}
	return sum / float64(n)
}
