package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cv-tailor/internal/extraction"
	"github.com/jonathan/cv-tailor/internal/fetch"
	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/rendering"
)

// HTTPStatus maps pipeline errors onto HTTP status codes. Validation
// failures are the caller's fault; compiler and upstream-fetch failures are
// bad gateways; a compile timeout is a gateway timeout.
func HTTPStatus(err error) int {
	var extractionErr *extraction.ValidationError
	var ingestionErr *ingestion.ValidationError
	var renderErr *rendering.ValidationError
	if errors.As(err, &extractionErr) || errors.As(err, &ingestionErr) || errors.As(err, &renderErr) {
		return http.StatusBadRequest
	}

	var templateErr *rendering.TemplateError
	if errors.As(err, &templateErr) {
		return http.StatusInternalServerError
	}

	var compErr *rendering.CompilationError
	if errors.As(err, &compErr) {
		if compErr.Reason == rendering.FailureTimeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}

	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
