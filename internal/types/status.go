package types

import ierr "github.com/insuranceguard/insuranceguard/internal/errors"

// Status tracks the lifecycle of a customer record. Archiving is
// non-destructive: the record and its history stay queryable.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	allowed := []Status{StatusActive, StatusArchived}
	for _, v := range allowed {
		if s == v {
			return nil
		}
	}
	return ierr.NewError("invalid status").
		WithHintf("Status must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}
