package guarderrors

import (
	"net/http"

	"go-vigilancia/internal/shared/apperror"
)

var (
	ErrGuardNotFound = apperror.New(
		apperror.CodeNotFound,
		"Guard not found",
		http.StatusNotFound,
	)

	ErrLegajoAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A guard with this legajo already exists",
		http.StatusConflict,
	)
)
