package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/storage"
	"github.com/JonathanAHerrera/Fitprint/internal/wardrobe"
)

func newTestHandler(t *testing.T, backendURL string) *Handler {
	t.Helper()
	dir := t.TempDir()
	store := wardrobe.NewStore(filepath.Join(dir, "wardrobe_images.json"))
	return New(config.Client{BaseURL: backendURL}, store, filepath.Join(dir, "uploads"))
}

func analyzeRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if userID != "" {
		writer.WriteField("user_id", userID)
	}
	part, err := writer.CreateFormFile("image", "outfit.jpg")
	if err != nil {
		t.Fatalf("Unable to create form file: %v", err)
	}
	part.Write([]byte("fake jpeg bytes"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleAnalyze(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analysis/outfit" {
			t.Errorf("Expected /analysis/outfit, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"analysis_id": "an_1",
			"clothing_item": {"clothing_id": "cl_1", "image_file": "image.jpg"},
			"sustainability_report": {
				"report_id": "rep_1",
				"overall_score": 3.25,
				"categories": {
					"material_origin": {"score": 4.0},
					"production_impact": {"score": 2.5},
					"labor_ethics": {"score": 4.5},
					"end_of_life": {"score": 2.0},
					"brand_transparency": {"score": 3.25}
				}
			}
		}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend.URL)
	w := httptest.NewRecorder()
	h.HandleAnalyze(w, analyzeRequest(t, "user_1700000000000"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var session storage.AnalysisSession
	if err := json.NewDecoder(w.Body).Decode(&session); err != nil {
		t.Fatalf("Unable to decode session: %v", err)
	}
	if session.Phase != "ready" {
		t.Errorf("Expected phase ready, got %s", session.Phase)
	}
	if session.UserID != "user_1700000000000" {
		t.Errorf("Expected user_1700000000000, got %s", session.UserID)
	}
	if session.Display == nil || session.Display.OverallScore != 65 {
		t.Errorf("Expected display score 65, got %+v", session.Display)
	}

	stored, exists := h.sessionStore.Get(session.ID)
	if !exists {
		t.Fatal("Expected session to be stored")
	}
	if stored.Result == nil || stored.Result.AnalysisID != "an_1" {
		t.Errorf("Expected stored result an_1, got %+v", stored.Result)
	}
}

func TestHandleAnalyzeBackendFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "inference timed out"}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend.URL)
	w := httptest.NewRecorder()
	h.HandleAnalyze(w, analyzeRequest(t, "user_1"))

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inference timed out") {
		t.Errorf("Expected backend detail in response, got %s", w.Body.String())
	}

	sessions := h.sessionStore.GetAll()
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 stored session, got %d", len(sessions))
	}
	for _, session := range sessions {
		if session.Phase != "failed" {
			t.Errorf("Expected phase failed, got %s", session.Phase)
		}
		if session.Error == "" {
			t.Error("Expected stored session error")
		}
	}
}

func TestHandleAnalyzeMissingImage(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(""))
	h.HandleAnalyze(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleWardrobe(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")

	// Starts empty.
	w := httptest.NewRecorder()
	h.HandleWardrobe(w, httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	// Append two, then verify order.
	for _, ref := range []string{"img://a", "img://b"} {
		body := strings.NewReader(`{"image_ref": "` + ref + `"}`)
		w = httptest.NewRecorder()
		h.HandleWardrobe(w, httptest.NewRequest(http.MethodPost, "/api/wardrobe", body))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 appending %s, got %d", ref, w.Code)
		}
	}

	images := listWardrobe(t, h)
	if !reflect.DeepEqual(images, []string{"img://a", "img://b"}) {
		t.Errorf("Expected [img://a img://b], got %v", images)
	}

	// Remove via query param.
	w = httptest.NewRecorder()
	h.HandleWardrobe(w, httptest.NewRequest(http.MethodDelete, "/api/wardrobe?image_ref=img%3A%2F%2Fa", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	images = listWardrobe(t, h)
	if !reflect.DeepEqual(images, []string{"img://b"}) {
		t.Errorf("Expected [img://b], got %v", images)
	}
}

func TestHandleWardrobeMissingRef(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")
	w := httptest.NewRecorder()
	h.HandleWardrobe(w, httptest.NewRequest(http.MethodPost, "/api/wardrobe", strings.NewReader("{}")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleWardrobeOrder(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")
	for _, ref := range []string{"img://a", "img://b", "img://c"} {
		if err := h.wardrobe.Append(ref); err != nil {
			t.Fatalf("Unable to seed wardrobe: %v", err)
		}
	}

	body := strings.NewReader(`{"images": ["img://c", "img://a", "img://b"]}`)
	w := httptest.NewRecorder()
	h.HandleWardrobeOrder(w, httptest.NewRequest(http.MethodPut, "/api/wardrobe/order", body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	images := listWardrobe(t, h)
	if !reflect.DeepEqual(images, []string{"img://c", "img://a", "img://b"}) {
		t.Errorf("Expected reordered list, got %v", images)
	}
}

func TestHandleWardrobeOrderRejectsNonPermutation(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")
	if err := h.wardrobe.Append("img://a"); err != nil {
		t.Fatalf("Unable to seed wardrobe: %v", err)
	}

	body := strings.NewReader(`{"images": ["img://a", "img://ghost"]}`)
	w := httptest.NewRecorder()
	h.HandleWardrobeOrder(w, httptest.NewRequest(http.MethodPut, "/api/wardrobe/order", body))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}

	images := listWardrobe(t, h)
	if !reflect.DeepEqual(images, []string{"img://a"}) {
		t.Errorf("Expected wardrobe unchanged, got %v", images)
	}
}

func TestHandleSessionDetail(t *testing.T) {
	h := newTestHandler(t, "http://localhost:0")
	session := &storage.AnalysisSession{ID: "sess_1", UserID: "user_1", Phase: "ready"}
	h.sessionStore.Set(session.ID, session)

	w := httptest.NewRecorder()
	h.HandleSessionDetail(w, httptest.NewRequest(http.MethodGet, "/api/sessions/sess_1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got storage.AnalysisSession
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Unable to decode session: %v", err)
	}
	if got.ID != "sess_1" || got.Phase != "ready" {
		t.Errorf("Unexpected session: %+v", got)
	}

	w = httptest.NewRecorder()
	h.HandleSessionDetail(w, httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.HandleSessionDetail(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/sess_1", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if _, exists := h.sessionStore.Get("sess_1"); exists {
		t.Error("Expected session deleted")
	}
}

func listWardrobe(t *testing.T, h *Handler) []string {
	t.Helper()
	w := httptest.NewRecorder()
	h.HandleWardrobe(w, httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing wardrobe, got %d", w.Code)
	}
	var resp struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Unable to decode wardrobe list: %v", err)
	}
	return resp.Images
}
