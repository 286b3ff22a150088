package main

import "errors"

// Evaluation error kinds. Call sites wrap these with context, so compare with
// errors.Is.
var (
	ErrConsExpected    = errors.New("cons expected")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDivisionByZero  = errors.New("division by zero")
)
