package shifterrors

import (
	"net/http"

	"go-vigilancia/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)

	ErrAssignmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Guard day assignment not found",
		http.StatusBadRequest,
	)

	ErrShiftOverlap = apperror.New(
		apperror.CodeConflict,
		"The shift overlaps an already planned interval",
		http.StatusConflict,
	)

	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"Shift duration must be between 0 and 24 hours",
		http.StatusBadRequest,
	)
)
