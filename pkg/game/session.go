package game

import "sync"

// EngineFactory は新しい試合用のエンジンを生成する
type EngineFactory func() (AI, error)

// Session は 1 つの Match に対するターン進行を直列化する
// 入力ハンドラと時間切れは別の goroutine から来うるので、各呼び出しはターン全体でロックを保持する
// エンジンの生成 (Restart) もロック内で行う
type Session struct {
	mu        sync.Mutex
	match     *Match
	newEngine EngineFactory
}

// NewSession は最初の試合を作る
func NewSession(totalTurns int, newEngine EngineFactory) (*Session, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	match, err := NewMatch(totalTurns, engine)
	if err != nil {
		return nil, err
	}
	return &Session{match: match, newEngine: newEngine}, nil
}

func (s *Session) Prediction() (Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Prediction()
}

func (s *Session) Play(m Move) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Play(m)
}

func (s *Session) Forfeit() (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Forfeit()
}

// Restart はエンジンを作り直し、同じターン数で新しい試合を始める
// 生成に失敗した場合は現在の試合をそのまま残す
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine, err := s.newEngine()
	if err != nil {
		return err
	}
	s.match.Restart(engine)
	return nil
}

func (s *Session) Snapshot() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Score()
}
