package handler

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"goldenbites/internal/apperror"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, r *http.Request, code int, payload any) {
	render.Status(r, code)
	render.JSON(w, r, payload)
}

// respondError maps the taxonomy to an HTTP status. Conflict, state and
// integrity failures surface as 400 with the kind in the body; the client
// tells them apart by kind, not status.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)

	var code int
	switch kind {
	case apperror.KindValidation, apperror.KindConflict, apperror.KindState, apperror.KindIntegrity:
		code = http.StatusBadRequest
	case apperror.KindNotFound:
		code = http.StatusNotFound
	case apperror.KindAuthorization:
		code = http.StatusForbidden
	case apperror.KindTransient:
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("handler: request failed")
	}

	respond(w, r, code, map[string]errorBody{
		"error": {Kind: kind.String(), Message: apperror.MessageOf(err)},
	})
}
