package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/shared/interceptor"
	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const msgInvalidRequestBody = "Invalid request body"

// bind decodes the JSON body into req and validates it. On failure the 400 response is written
// and false is returned.
func bind(w http.ResponseWriter, r *http.Request, v *validation.Validator, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return false
	}

	if errs := v.Struct(req); errs != nil {
		utilities.WriteErrors(w, http.StatusBadRequest, errs...)
		return false
	}

	return true
}

// userID returns the caller id set by the auth guard. Routes using it are always guarded.
func userID(r *http.Request) string {
	id, _ := interceptor.UserIDFromContext(r.Context())
	return id
}

func internalError(w http.ResponseWriter, logger *zerolog.Logger, err error, msg string) {
	logger.Error().Err(err).Msg(msg)
	utilities.WriteInternalError(w)
}
