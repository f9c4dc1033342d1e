package game

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	errorRecordMove     = "error recording opponent move"
	errorPredictNext    = "error predicting next move"
	errorPlayTurn       = "error playing turn"
	errorRunMatch       = "error running match"
	errorInvalidMoveFmt = "move must be -1 or 1, got %d"
)

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidTurnCount = errors.New("invalid number of game turns")
	ErrMatchOver        = errors.New("match is over")
)

// エラーのラップ
func WrapRecordMoveError(err error) error {
	return errors.Wrap(err, errorRecordMove)
}

func WrapPredictNextError(err error) error {
	return errors.Wrap(err, errorPredictNext)
}

func wrapPlayTurnError(err error) error {
	return errors.Wrap(err, errorPlayTurn)
}

func wrapRunMatchError(err error) error {
	return errors.Wrap(err, errorRunMatch)
}

// エラーの生成
func newInvalidMoveError(v int) error {
	return errors.Wrap(ErrInvalidMove, fmt.Sprintf(errorInvalidMoveFmt, v))
}

// NewInvalidTurnCountError は不正なターン数のエラーを返す
func NewInvalidTurnCountError(turns int) error {
	return errors.Wrapf(ErrInvalidTurnCount, "got %d", turns)
}

// CheckMove は Left / Right 以外の手を拒否する
func CheckMove(m Move) error {
	if !m.Valid() {
		return newInvalidMoveError(int(m))
	}
	return nil
}
