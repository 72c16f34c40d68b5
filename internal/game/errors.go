package game

import "errors"

var (
	ErrMalformedMove = errors.New("malformed move")
	ErrIllegalMove   = errors.New("illegal move")
	ErrIllegalBlock  = errors.New("illegal block placement")
	ErrUndoUnderflow = errors.New("no move to undo")
	ErrBadPosition   = errors.New("bad position")
)
