package ensemble

// confidence maps a state's ratchet level to its prediction strength.
var confidence = [...]float64{0, 0.3, 0.8, 1.0}

const maxLevel = int8(len(confidence) - 1)

// StateTable remembers, for every encoded window of (value, outcome) pairs, which
// value followed it and how sure that memory is. Entries are signed levels:
// the sign is the predicted value and the magnitude indexes confidence.
type StateTable struct {
	memory int
	levels []int8
}

// NewStateTable allocates 2^(2*memory) entries, all without prior information.
func NewStateTable(memory int) *StateTable {
	return &StateTable{
		memory: memory,
		levels: make([]int8, 1<<(2*memory)),
	}
}

func (t *StateTable) Size() int { return len(t.levels) }

// Index encodes a window with positional binary weights. Pair k sets bit 2k when
// its outcome is positive and bit 2k+1 when its value is positive.
func (t *StateTable) Index(values, outcomes []float64) int {
	idx := 0
	for k := 0; k < t.memory; k++ {
		if outcomes[k] > 0 {
			idx |= 1 << (2 * k)
		}
		if values[k] > 0 {
			idx |= 1 << (2*k + 1)
		}
	}
	return idx
}

// Confidence is the signed prediction stored for a state.
func (t *StateTable) Confidence(idx int) float64 {
	l := t.levels[idx]
	if l < 0 {
		return -confidence[-l]
	}
	return confidence[l]
}

// Visit records that target followed the state: 0 -> 0.3 -> 0.8 -> 1.0 while the
// target keeps its sign, saturating at 1.0; a sign change resets the entry to 0.
func (t *StateTable) Visit(idx int, target float64) {
	var sign int8 = 1
	if target < 0 {
		sign = -1
	}
	l := t.levels[idx]
	switch {
	case l == 0:
		t.levels[idx] = sign
	case (l > 0) == (sign > 0):
		t.levels[idx] = sign * min(abs8(l)+1, maxLevel)
	default:
		t.levels[idx] = 0
	}
}

// Step updates the entry of the window before the latest value with that value,
// then reads the entry of the current window. Both series are aligned at the tail.
func (t *StateTable) Step(values, outcomes []float64) float64 {
	pairs := min(len(values), len(outcomes))
	v := values[len(values)-pairs:]
	o := outcomes[len(outcomes)-pairs:]

	if pairs >= t.memory+1 {
		prior := t.Index(v[pairs-1-t.memory:pairs-1], o[pairs-1-t.memory:pairs-1])
		t.Visit(prior, v[pairs-1])
	}
	if pairs < t.memory {
		return 0
	}
	return t.Confidence(t.Index(v[pairs-t.memory:], o[pairs-t.memory:]))
}

func abs8(x int8) int8 {
	if x < 0 {
		return -x
	}
	return x
}
