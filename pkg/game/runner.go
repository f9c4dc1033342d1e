package game

import (
	"github.com/montplusa/mind-reader/pkg/game/debug"
)

// BattleResult は対戦結果の記録
type BattleResult struct {
	Engine      string `json:"engine"`      // 予測エンジン名
	Opponent    string `json:"opponent"`    // 模擬プレイヤー名
	Moves       []Move `json:"moves"`       // 相手の手の履歴
	Predictions []Move `json:"predictions"` // 各ターンの予測
	Score       Score  `json:"score"`
}

// GameRunner はエンジンと模擬プレイヤーの対戦を管理
type GameRunner struct {
	engine     AI
	opponent   Opponent
	totalTurns int
}

// NewGameRunner はエンジンと相手をセットして返す
func NewGameRunner(engine AI, opponent Opponent, totalTurns int) *GameRunner {
	return &GameRunner{engine: engine, opponent: opponent, totalTurns: totalTurns}
}

// Run は試合終了まで対戦を実行して BattleResult を返す
func (gr *GameRunner) Run() (BattleResult, error) {
	match, err := NewMatch(gr.totalTurns, gr.engine)
	if err != nil {
		return BattleResult{}, wrapRunMatchError(err)
	}

	result := BattleResult{
		Engine:      gr.engine.Name(),
		Opponent:    gr.opponent.Name(),
		Moves:       make([]Move, 0, gr.totalTurns),
		Predictions: make([]Move, 0, gr.totalTurns),
	}

	// ゲームループ
	for !match.Score().Over {
		move := gr.opponent.NextMove()
		tr, err := match.Play(move)
		if err != nil {
			return result, wrapRunMatchError(err)
		}
		gr.opponent.Observe(move, tr.Prediction)

		debug.Log("turn %d: move=%s prediction=%s user=%d machine=%d",
			tr.Turn, move, tr.Prediction, tr.UserScore, tr.MachineScore)

		result.Moves = append(result.Moves, move)
		result.Predictions = append(result.Predictions, tr.Prediction)
	}

	result.Score = match.Score()
	return result, nil
}
