package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}

	data, err := NewSource().Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("Expected file contents, got %q", data)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewSource().Read(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected *ReadError, got %v", err)
	}
	if readErr.Ref == "" {
		t.Errorf("Expected error to carry the locator")
	}
}

func TestReadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("remote bytes")); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	data, err := NewSource().Read(context.Background(), server.URL+"/photo.jpg")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "remote bytes" {
		t.Errorf("Expected remote bytes, got %q", data)
	}
}

func TestReadURLNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewSource().Read(context.Background(), server.URL+"/photo.jpg")

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected *ReadError, got %v", err)
	}
}
