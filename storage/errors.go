package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("storage: record not found")
	ErrDuplicate = errors.New("storage: duplicate value")
)

// Unique constraint names, shared by the migrations and the memory store.
const (
	ConstraintManufacturerName = "manufacturers_name_key"
	ConstraintDriverUsername   = "drivers_username_key"
	ConstraintDriverLicense    = "drivers_license_number_key"
)

// DuplicateError reports a unique constraint violation. It matches
// ErrDuplicate under errors.Is.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s (constraint %s)", ErrDuplicate, e.Constraint)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// DuplicateConstraint returns the violated constraint of err, if any.
func DuplicateConstraint(err error) (string, bool) {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de.Constraint, true
	}
	return "", false
}
