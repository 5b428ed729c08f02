package handler

import (
	"github.com/spf13/cast"

	"github.com/mediflow/clinic-api/pkg/errors"
)

// ParseID coerces a path parameter to an integer identifier. Anything
// non-numeric is a caller error.
func ParseID(raw string) (int, error) {
	id, err := cast.ToIntE(raw)
	if err != nil || id <= 0 {
		return 0, errors.Validation("invalid record ID", err)
	}
	return id, nil
}
