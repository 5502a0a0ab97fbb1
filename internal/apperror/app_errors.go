package apperror

import "errors"

var (
	ErrInvalidBoardSize   = errors.New("invalid board size")
	ErrMalformedBoardFile = errors.New("malformed board file")
	ErrSquareNotHidden    = errors.New("square is not hidden")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrConflictingBoard   = errors.New("board size and board file are mutually exclusive")
	ErrInvalidPort        = errors.New("invalid port")
)
