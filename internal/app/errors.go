package app

import (
	"errors"
	"fmt"

	"hotel_booking/internal/domain"
)

// asKind makes sure a gateway failure carries its domain error kind.
func asKind(err, kind error) error {
	if err == nil || errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// exists turns a find-by-name lookup into a boolean, surfacing store failures.
func exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
