package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/JonathanAHerrera/Fitprint/internal/analysis"
	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/normalize"
	"github.com/JonathanAHerrera/Fitprint/internal/storage"
	"github.com/google/uuid"
)

// maxUploadBytes caps analyze uploads at 10MB.
const maxUploadBytes = 10 * 1024 * 1024

// HandleAnalyze accepts a multipart photo upload, runs one full
// capture-to-report cycle, and responds with the session including the
// normalized display model.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, "Failed to read image: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to read image contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= maxUploadBytes {
		h.writeError(w, "Image too large (max 10MB)", http.StatusBadRequest)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		userID = config.UserID()
	}

	imageRef, err := h.saveUpload(fileData, header.Filename)
	if err != nil {
		h.writeError(w, "Failed to save image: "+err.Error(), http.StatusInternalServerError)
		return
	}

	session := &storage.AnalysisSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		ImageRef:  imageRef,
		CreatedAt: time.Now(),
	}

	// One orchestrator per capture session.
	orch := analysis.NewOrchestrator(h.source, h.client)
	result, err := orch.Submit(r.Context(), imageRef, userID)
	session.Phase = string(orch.Phase())
	if err != nil {
		session.Error = err.Error()
		h.sessionStore.Set(session.ID, session)
		h.writeError(w, err.Error(), analysisStatus(err))
		return
	}

	display := normalize.Report(result.SustainabilityReport)
	session.Result = result
	session.Display = &display
	h.sessionStore.Set(session.ID, session)

	slog.Info("Analysis session complete", "session_id", session.ID, "analysis_id", result.AnalysisID)
	h.writeJSON(w, session)
}

// saveUpload stores the uploaded bytes under the uploads directory and
// returns the locator the orchestrator will dereference.
func (h *Handler) saveUpload(data []byte, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(h.uploadsDir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	slog.Info("Image saved", "path", path)
	return path, nil
}
