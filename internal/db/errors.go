package db

import "errors"

// ErrNotFound is returned by Fetch for a missing or expired key.
var ErrNotFound = errors.New("db: key not found")

// Command names used as OpError.Op.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpExpire = "EXPIRE"
	OpDel    = "DEL"
	OpPing   = "PING"
)

// OpError records the command and key that failed.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }
