package game

// AI は相手の次の手を予測するエンジンのインターフェース
type AI interface {
	Name() string
	// 次のターンの予測を返す
	PredictNext() (Move, error)
	// 終了したターンの相手の実際の手を記録する
	RecordOpponentMove(m Move) error
}

// Opponent はオフライン対戦用の模擬プレイヤー
type Opponent interface {
	Name() string
	// 次に出す手を返す
	NextMove() Move
	// ターン終了後に自分の手とエンジンの予測を受け取る
	Observe(own, predicted Move)
}

// Rand はエンジンが使う一様乱数源 (*rand.Rand で満たせる)
type Rand interface {
	Float64() float64
}
