package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
)

// HandleWardrobe serves the wardrobe collection: GET lists the ordered
// locators, POST appends one, DELETE removes one.
func (h *Handler) HandleWardrobe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		images, err := h.wardrobe.Load()
		if err != nil {
			h.writeError(w, "Failed to load wardrobe: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]any{"images": images})

	case http.MethodPost:
		ref, ok := h.readImageRef(w, r)
		if !ok {
			return
		}
		if err := h.wardrobe.Append(ref); err != nil {
			h.writeError(w, "Failed to save wardrobe: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]any{"image_ref": ref, "message": "Added to wardrobe"})

	case http.MethodDelete:
		ref, ok := h.readImageRef(w, r)
		if !ok {
			return
		}
		if err := h.wardrobe.Remove(ref); err != nil {
			h.writeError(w, "Failed to update wardrobe: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleWardrobeOrder replaces the wardrobe ordering wholesale, the way a
// drag-and-drop UI hands back the full new sequence.
func (h *Handler) HandleWardrobeOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.wardrobe.Reorder(request.Images); err != nil {
		if errors.Is(err, wardrobe.ErrReorderInvariant) {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeError(w, "Failed to save wardrobe: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]any{"images": request.Images})
}

func (h *Handler) readImageRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	if ref := r.URL.Query().Get("image_ref"); ref != "" {
		return ref, true
	}

	var request struct {
		ImageRef string `json:"image_ref"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ImageRef == "" {
		h.writeError(w, "image_ref is required", http.StatusBadRequest)
		return "", false
	}
	return request.ImageRef, true
}
