package httpapi

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	requestValidationCode = "REQUEST_VALIDATION_FAILED"
)

// wrapValidationError tags request validation failures so writeError can
// map them to a 400 without enumerating every input type.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "request validation failed").
		WithTextCode(requestValidationCode)
}

func isValidationError(err error) bool {
	return goerrors.HasCategory(err, goerrors.CategoryValidation)
}
