package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies run failures so callers can branch on kind.
type ErrorKind string

const (
	KindUnknown          ErrorKind = "UNKNOWN"
	KindDataFormat       ErrorKind = "DATA_FORMAT"
	KindModelLoad        ErrorKind = "MODEL_LOAD"
	KindInsufficientData ErrorKind = "INSUFFICIENT_DATA"
	KindPrediction       ErrorKind = "PREDICTION"
)

var (
	ErrDataFormat       = errors.New("data format error")
	ErrModelLoad        = errors.New("model load error")
	ErrInsufficientData = errors.New("insufficient data")
	ErrPrediction       = errors.New("prediction error")
)

var kindSentinels = map[ErrorKind]error{
	KindDataFormat:       ErrDataFormat,
	KindModelLoad:        ErrModelLoad,
	KindInsufficientData: ErrInsufficientData,
	KindPrediction:       ErrPrediction,
}

// Error carries a kind, the operation that failed and the cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, kindSentinels[e.Kind])
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataFormat) and friends match by kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// Errorf builds a kinded error with a formatted cause.
func Errorf(kind ErrorKind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
