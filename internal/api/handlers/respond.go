package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, ErrorResponse{Error: msg})
}

// respondServiceError maps service errors to responses. Unknown users are a
// client error (400, not 404); anything unexpected is logged and hidden
// behind a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, r, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, r, http.StatusBadRequest, "User not found")
	default:
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg(msg)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// formPayload is implemented by request bodies that may arrive as forms.
type formPayload interface {
	readForm(get func(key string) string)
}

// decodePayload fills v from a JSON body or from url-encoded / multipart form fields.
func decodePayload(w http.ResponseWriter, r *http.Request, v formPayload) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	// The request header decides, not render.SetContentType, which only
	// describes the response.
	if render.GetContentType(r.Header.Get("Content-Type")) == render.ContentTypeJSON {
		return render.DecodeJSON(r.Body, v)
	}
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	v.readForm(r.PostForm.Get)
	return nil
}


// numberText holds a field that clients may send as a JSON number or a
// string. Its text is validated by the services.
type numberText string

func (n *numberText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = numberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = numberText(num)
	return nil
}
