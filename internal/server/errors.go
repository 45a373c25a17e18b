package server

import (
	"net/http"

	"github.com/camila/resume-screener/internal/analysis"
	"github.com/camila/resume-screener/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *analysis.ErrClientNotFound, *analysis.ErrJobNotFound:
		return http.StatusNotFound
	case *analysis.ErrUnsupportedFile, *analysis.ErrUnreadableFile, *analysis.ErrEmptyResume:
		return http.StatusBadRequest
	case *schemas.ValidationError:
		return http.StatusBadRequest
	case *analysis.ErrQuotaExceeded:
		return http.StatusForbidden
	case *analysis.UpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
