package game

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

// constantAI は常に同じ側を予測し、記録された手を保持する
type constantAI struct {
	prediction Move
	recorded   []Move
}

func (c *constantAI) Name() string               { return "constant" }
func (c *constantAI) PredictNext() (Move, error) { return c.prediction, nil }

func (c *constantAI) RecordOpponentMove(m Move) error {
	if err := CheckMove(m); err != nil {
		return err
	}
	c.recorded = append(c.recorded, m)
	return nil
}

// refusingAI は予測はするが手の記録に失敗する
type refusingAI struct {
	constantAI
}

var errRefused = errors.New("engine refused the move")

func (r *refusingAI) RecordOpponentMove(Move) error { return errRefused }

func playOrFatal(t *testing.T, m *Match, move Move) TurnResult {
	t.Helper()
	tr, err := m.Play(move)
	if err != nil {
		t.Fatalf("Play(%s) failed: %v", move, err)
	}
	return tr
}

func TestNewMatchRejectsOddTurns(t *testing.T) {
	for _, n := range []int{-2, 0, 1, 3, 51} {
		if _, err := NewMatch(n, &constantAI{prediction: Right}); !errors.Is(err, ErrInvalidTurnCount) {
			t.Fatalf("NewMatch(%d): expected ErrInvalidTurnCount, got %v", n, err)
		}
	}
}

func TestMatchScoring(t *testing.T) {
	engine := &constantAI{prediction: Right}
	m, err := NewMatch(4, engine)
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}

	tr := playOrFatal(t, m, Right)
	if tr.Outcome != Win || tr.MachineScore != 1 || tr.UserScore != 0 {
		t.Fatalf("expected the machine to score a correct prediction, got %+v", tr)
	}
	tr = playOrFatal(t, m, Left)
	if tr.Outcome != Loss || tr.UserScore != 1 {
		t.Fatalf("expected the user to score a wrong prediction, got %+v", tr)
	}
	if tr.Over {
		t.Fatalf("expected the match to continue at 1-1")
	}

	tr = playOrFatal(t, m, Left)
	if !tr.Over || tr.Winner != User {
		t.Fatalf("expected the user to win on reaching half the turns, got %+v", tr.Score)
	}
	if tr.Turn != 3 || len(engine.recorded) != 3 {
		t.Fatalf("expected 3 recorded turns, got turn %d and %d records", tr.Turn, len(engine.recorded))
	}

	if _, err := m.Play(Left); !errors.Is(err, ErrMatchOver) {
		t.Fatalf("expected ErrMatchOver, got %v", err)
	}
	if _, err := m.Forfeit(); !errors.Is(err, ErrMatchOver) {
		t.Fatalf("expected ErrMatchOver from Forfeit, got %v", err)
	}
}

func TestMatchRejectsInvalidMove(t *testing.T) {
	engine := &constantAI{prediction: Right}
	m, _ := NewMatch(4, engine)
	if _, err := m.Play(Move(0)); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if s := m.Score(); s.Turn != 0 || s.UserScore+s.MachineScore != 0 {
		t.Fatalf("expected an invalid move to leave the score untouched, got %+v", s)
	}
	if len(engine.recorded) != 0 {
		t.Fatalf("expected nothing recorded, got %v", engine.recorded)
	}
}

func TestMatchKeepsScoreWhenRecordFails(t *testing.T) {
	m, _ := NewMatch(4, &refusingAI{constantAI{prediction: Right}})
	for _, move := range []Move{Right, Left} {
		if _, err := m.Play(move); !errors.Is(err, errRefused) {
			t.Fatalf("Play(%s): expected the engine error, got %v", move, err)
		}
	}
	if s := m.Score(); s.Turn != 0 || s.UserScore != 0 || s.MachineScore != 0 || s.Over {
		t.Fatalf("expected an untouched score after failed records, got %+v", s)
	}
}

func TestMatchForfeitAndRestart(t *testing.T) {
	m, _ := NewMatch(2, &constantAI{prediction: Left})
	tr, err := m.Forfeit()
	if err != nil {
		t.Fatalf("Forfeit failed: %v", err)
	}
	if !tr.Forfeit || tr.MachineScore != 1 || !tr.Over || tr.Winner != Machine {
		t.Fatalf("expected a forfeited turn to hand the machine the match, got %+v", tr)
	}

	fresh := &constantAI{prediction: Right}
	m.Restart(fresh)
	if s := m.Score(); s.Over || s.MachineScore != 0 || s.TotalTurns != 2 {
		t.Fatalf("expected a reset score, got %+v", s)
	}
	if m.Engine() != fresh {
		t.Fatalf("expected the new engine after restart")
	}
}

func TestSessionSerialisesTurns(t *testing.T) {
	engine := &constantAI{prediction: Right}
	s, err := NewSession(200, func() (AI, error) { return engine, nil })
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			move := Left
			if i%2 == 0 {
				move = Right
			}
			for j := 0; j < 4; j++ {
				if _, err := s.Play(move); err != nil && !errors.Is(err, ErrMatchOver) {
					t.Errorf("Play failed: %v", err)
				}
				_, _ = s.Prediction()
			}
		}(i)
	}
	wg.Wait()

	score := s.Snapshot()
	if score.Turn != len(engine.recorded) {
		t.Fatalf("expected %d recorded moves, got %d", score.Turn, len(engine.recorded))
	}
	if score.UserScore+score.MachineScore != score.Turn {
		t.Fatalf("expected every turn to score once, got %+v", score)
	}
}

func TestSessionRestart(t *testing.T) {
	built := 0
	s, err := NewSession(2, func() (AI, error) {
		built++
		return &constantAI{prediction: Right}, nil
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if _, err := s.Forfeit(); err != nil {
		t.Fatalf("Forfeit failed: %v", err)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if built != 2 {
		t.Fatalf("expected a fresh engine per match, got %d builds", built)
	}
	if s.Snapshot().Over {
		t.Fatalf("expected a running match after restart")
	}

	failing := errors.New("boom")
	if _, err := NewSession(2, func() (AI, error) { return nil, failing }); !errors.Is(err, failing) {
		t.Fatalf("expected the factory error, got %v", err)
	}
}

func TestSessionRestartBuildsEnginesOneAtATime(t *testing.T) {
	var inside, overlaps int32
	built := 0
	s, err := NewSession(2, func() (AI, error) {
		if atomic.AddInt32(&inside, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		defer atomic.AddInt32(&inside, -1)
		built++
		return &constantAI{prediction: Right}, nil
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Restart(); err != nil {
				t.Errorf("Restart failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if overlaps != 0 {
		t.Fatalf("expected engine construction to be serialised, got %d overlaps", overlaps)
	}
	if built != 33 {
		t.Fatalf("expected 33 engines, got %d", built)
	}
}

func TestSessionRestartFailureKeepsMatch(t *testing.T) {
	fail := false
	s, _ := NewSession(4, func() (AI, error) {
		if fail {
			return nil, errRefused
		}
		return &constantAI{prediction: Right}, nil
	})
	if _, err := s.Play(Right); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	fail = true
	if err := s.Restart(); !errors.Is(err, errRefused) {
		t.Fatalf("expected the factory error, got %v", err)
	}
	if got := s.Snapshot(); got.Turn != 1 || got.MachineScore != 1 {
		t.Fatalf("expected the running match to survive, got %+v", got)
	}
}
