package game

import (
	"testing"

	"github.com/pkg/errors"
)

// alternating は左右交互に出し、観測回数を数える
type alternating struct {
	next     Move
	observed int
}

func (a *alternating) Name() string   { return "alternating" }
func (a *alternating) NextMove() Move { return a.next }

func (a *alternating) Observe(own, predicted Move) {
	a.observed++
	a.next = own.Opposite()
}

func TestGameRunnerRun(t *testing.T) {
	opp := &alternating{next: Left}
	result, err := NewGameRunner(&constantAI{prediction: Right}, opp, 10).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Score.Over {
		t.Fatalf("expected the match to be over, got %+v", result.Score)
	}
	if len(result.Moves) != result.Score.Turn || len(result.Predictions) != result.Score.Turn {
		t.Fatalf("expected one move and prediction per turn, got %d/%d for %d turns",
			len(result.Moves), len(result.Predictions), result.Score.Turn)
	}
	if opp.observed != result.Score.Turn {
		t.Fatalf("expected the opponent to observe %d turns, got %d", result.Score.Turn, opp.observed)
	}
	// 左から始まるので、ユーザーが先に 5 点に達する
	if result.Score.Winner != User || result.Score.Turn != 9 {
		t.Fatalf("expected the user to win in 9 turns, got %+v", result.Score)
	}
	if result.Engine != "constant" || result.Opponent != "alternating" {
		t.Fatalf("unexpected names %q and %q", result.Engine, result.Opponent)
	}
}

func TestGameRunnerInvalidTurns(t *testing.T) {
	_, err := NewGameRunner(&constantAI{prediction: Right}, &alternating{next: Left}, 7).Run()
	if !errors.Is(err, ErrInvalidTurnCount) {
		t.Fatalf("expected ErrInvalidTurnCount, got %v", err)
	}
}
