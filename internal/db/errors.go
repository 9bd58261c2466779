package db

import (
	"fmt"
)

type PrefNotFoundError struct {
	Username string
	Key      string
}

func (e *PrefNotFoundError) Error() string {
	return fmt.Sprintf("No %s stored for user %s", e.Key, e.Username)
}

type PrefDecodeError struct {
	Username string
	Key      string
	Err      error
}

func (e *PrefDecodeError) Error() string {
	return fmt.Sprintf("Stored %s of user %s is unreadable: %v", e.Key, e.Username, e.Err)
}

func (e *PrefDecodeError) Unwrap() error {
	return e.Err
}
