package game

// Side は試合の勝者
type Side int

const (
	NoSide Side = iota
	User
	Machine
)

func (s Side) String() string {
	switch s {
	case User:
		return "user"
	case Machine:
		return "machine"
	default:
		return "none"
	}
}

// Score は試合の得点状況
type Score struct {
	TotalTurns   int  `json:"total_turns"`
	Turn         int  `json:"turn"`
	UserScore    int  `json:"user_score"`
	MachineScore int  `json:"machine_score"`
	Over         bool `json:"over"`
	Winner       Side `json:"winner"`
}

// TurnResult は 1 ターン分の結果
type TurnResult struct {
	Score
	Move       Move    `json:"move"`
	Prediction Move    `json:"prediction"`
	Outcome    Outcome `json:"outcome"`
	Forfeit    bool    `json:"forfeit"`
}

// Match はゲームループが持つ試合状態
// どちらかの得点が TotalTurns/2 に達した時点で試合終了
type Match struct {
	score  Score
	engine AI
}

// NewMatch は試合状態を初期化して返す。TotalTurns は 2 以上の偶数
func NewMatch(totalTurns int, engine AI) (*Match, error) {
	if totalTurns < 2 || totalTurns%2 != 0 {
		return nil, NewInvalidTurnCountError(totalTurns)
	}
	return &Match{
		score:  Score{TotalTurns: totalTurns},
		engine: engine,
	}, nil
}

// Engine は現在のエンジンを返す
func (m *Match) Engine() AI {
	return m.engine
}

// Score は現在の得点状況を返す
func (m *Match) Score() Score {
	return m.score
}

// Prediction はエンジンの次の予測を返す
func (m *Match) Prediction() (Move, error) {
	p, err := m.engine.PredictNext()
	if err != nil {
		return 0, WrapPredictNextError(err)
	}
	return p, nil
}

// Play はユーザーの手を 1 ターン分適用する
// 予測が当たればマシン、外れればユーザーの得点
func (m *Match) Play(move Move) (TurnResult, error) {
	if m.score.Over {
		return TurnResult{}, wrapPlayTurnError(ErrMatchOver)
	}
	if err := CheckMove(move); err != nil {
		return TurnResult{}, wrapPlayTurnError(err)
	}

	prediction, err := m.Prediction()
	if err != nil {
		return TurnResult{}, wrapPlayTurnError(err)
	}

	// エンジンが手を記録できた場合のみ得点を動かす
	if err := m.engine.RecordOpponentMove(move); err != nil {
		return TurnResult{}, wrapPlayTurnError(WrapRecordMoveError(err))
	}

	outcome := OutcomeOf(prediction, move)
	if outcome == Win {
		m.score.MachineScore++
	} else {
		m.score.UserScore++
	}
	m.score.Turn++
	m.checkOver()

	return TurnResult{
		Score:      m.score,
		Move:       move,
		Prediction: prediction,
		Outcome:    outcome,
	}, nil
}

// Forfeit は時間切れのターン: マシンの得点とし、手は記録しない
func (m *Match) Forfeit() (TurnResult, error) {
	if m.score.Over {
		return TurnResult{}, wrapPlayTurnError(ErrMatchOver)
	}
	m.score.MachineScore++
	m.checkOver()
	return TurnResult{Score: m.score, Forfeit: true}, nil
}

// Restart は得点をリセットし新しいエンジンを設定する
func (m *Match) Restart(engine AI) {
	m.score = Score{TotalTurns: m.score.TotalTurns}
	m.engine = engine
}

func (m *Match) checkOver() {
	half := m.score.TotalTurns / 2
	switch {
	case m.score.UserScore >= half:
		m.score.Over = true
		m.score.Winner = User
	case m.score.MachineScore >= half:
		m.score.Over = true
		m.score.Winner = Machine
	}
}
