package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonathanAHerrera/Fitprint/internal/analysis"
	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/media"
	"github.com/JonathanAHerrera/Fitprint/internal/storage"
	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
)

// Handler serves the presentation boundary: analysis sessions and the
// wardrobe. Each analyze request drives its own orchestrator instance.
type Handler struct {
	cfg          config.Client
	source       *media.Source
	client       *analysis.Client
	sessionStore *storage.SessionStore
	wardrobe     *wardrobe.Store
	uploadsDir   string
}

// New wires a handler against the given service config and wardrobe store.
func New(cfg config.Client, store *wardrobe.Store, uploadsDir string) *Handler {
	source := media.NewSource()
	return &Handler{
		cfg:          cfg,
		source:       source,
		client:       analysis.NewClient(cfg, source),
		sessionStore: storage.New(),
		wardrobe:     store,
		uploadsDir:   uploadsDir,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// analysisStatus maps a classified analysis failure to an HTTP status for
// the facade response.
func analysisStatus(err error) int {
	var serviceErr *analysis.ServiceError
	var readErr *media.ReadError
	var netErr *analysis.NetworkError
	var malformedErr *analysis.MalformedResponseError
	switch {
	case errors.As(err, &readErr):
		return http.StatusBadRequest
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway
	case errors.As(err, &malformedErr):
		return http.StatusBadGateway
	case errors.As(err, &netErr):
		return http.StatusGatewayTimeout
	case errors.Is(err, analysis.ErrInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
