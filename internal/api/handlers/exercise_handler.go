package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ExerciseHandler handles HTTP requests for a user's exercise log.
type ExerciseHandler struct {
	service services.ExerciseServiceProvider
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service services.ExerciseServiceProvider) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// AddExercisePayload is the expected body for adding an exercise. Duration
// accepts a JSON number or a numeric string.
type AddExercisePayload struct {
	Description string     `json:"description"`
	Duration    numberText `json:"duration"`
	Date        string     `json:"date"`
}

func (p *AddExercisePayload) readForm(get func(string) string) {
	p.Description = get("description")
	p.Duration = numberText(get("duration"))
	p.Date = get("date")
}

// ExerciseResponse is returned after an exercise is added.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// LogEntry is a single exercise in a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is a user's filtered exercise log.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// Create handles adding an exercise to a user's log.
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	var payload AddExercisePayload
	if err := decodePayload(w, r, &payload); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.AddExercise(r.Context(), userID, services.ExerciseInput{
		Description: payload.Description,
		Duration:    string(payload.Duration),
		Date:        payload.Date,
	})
	if err != nil {
		respondServiceError(w, r, err, "Failed to add exercise")
		return
	}

	log.Info().Str("user_id", res.User.ID).Str("exercise_id", res.Exercise.ID).Msg("Exercise added")
	respondJSON(w, r, http.StatusOK, ExerciseResponse{
		ID:          res.User.ID,
		Username:    res.User.Username,
		Date:        res.Exercise.FormattedDate(),
		Duration:    res.Exercise.Duration,
		Description: res.Exercise.Description,
	})
}

// GetLog handles retrieving a user's exercise log filtered by the from, to
// and limit query parameters.
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	query := r.URL.Query()

	userLog, err := h.service.GetLog(r.Context(), userID, services.LogQuery{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: query.Get("limit"),
	})
	if err != nil {
		respondServiceError(w, r, err, "Failed to get exercise log")
		return
	}

	entries := make([]LogEntry, 0, len(userLog.Entries))
	for _, e := range userLog.Entries {
		entries = append(entries, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.FormattedDate(),
		})
	}
	respondJSON(w, r, http.StatusOK, LogResponse{
		ID:       userLog.User.ID,
		Username: userLog.User.Username,
		Count:    userLog.Count,
		Log:      entries,
	})
}
