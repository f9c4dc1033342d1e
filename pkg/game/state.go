package game

// Move はプレイヤーの一手 (左 = -1, 右 = +1)
type Move int8

const (
	Left  Move = -1
	Right Move = 1
)

// ParseMove は整数値を Move に変換する。±1 以外は ErrInvalidMove
func ParseMove(v int) (Move, error) {
	if v != int(Left) && v != int(Right) {
		return 0, newInvalidMoveError(v)
	}
	return Move(v), nil
}

// Valid は合法な手かどうかを返す
func (m Move) Valid() bool {
	return m == Left || m == Right
}

// Opposite は反対側の手を返す
func (m Move) Opposite() Move {
	return -m
}

func (m Move) String() string {
	switch m {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// Outcome は予測の当たり外れ (的中 = +1, 外れ = -1)
type Outcome int8

const (
	Win  Outcome = 1
	Loss Outcome = -1
)

// OutcomeOf は予測と実際の手から Outcome を求める
func OutcomeOf(predicted, actual Move) Outcome {
	if predicted == actual {
		return Win
	}
	return Loss
}

// History は相手の手・反転系列・勝敗の履歴を保持する
// moves と outcomes は常に同じ長さで、1 ターンにつき 1 つずつ追加される
type History struct {
	moves    []float64
	flips    []float64 // 直前と異なる手なら +1, 同じなら -1
	outcomes []float64
}

// NewHistory は空の履歴を返す
func NewHistory(capacity int) *History {
	return &History{
		moves:    make([]float64, 0, capacity),
		flips:    make([]float64, 0, capacity),
		outcomes: make([]float64, 0, capacity),
	}
}

// Append は 1 ターン分の手と結果を追加する
func (h *History) Append(m Move, o Outcome) {
	h.moves = append(h.moves, float64(m))
	if n := len(h.moves); n > 1 {
		if h.moves[n-1] == h.moves[n-2] {
			h.flips = append(h.flips, -1)
		} else {
			h.flips = append(h.flips, 1)
		}
	}
	h.outcomes = append(h.outcomes, float64(o))
}

// Len は完了したターン数
func (h *History) Len() int {
	return len(h.moves)
}

// Moves は手の系列を返す。呼び出し側で変更しないこと
func (h *History) Moves() []float64 { return h.moves }

// Flips は反転系列を返す。空でなければ Moves より 1 つ短い
func (h *History) Flips() []float64 { return h.flips }

// Outcomes は各ターンの予測の当たり外れを返す
func (h *History) Outcomes() []float64 { return h.outcomes }

// LastMove は直近の相手の手を返す。履歴が空なら ok=false
func (h *History) LastMove() (Move, bool) {
	if len(h.moves) == 0 {
		return 0, false
	}
	return Move(h.moves[len(h.moves)-1]), true
}
