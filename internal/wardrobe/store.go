// Package wardrobe persists the user's ordered collection of saved item
// image locators. The whole collection lives under a single durable key
// as a JSON-encoded list; every mutation is a read-modify-write that
// replaces the value atomically.
package wardrobe

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrReorderInvariant is returned when a reorder sequence is not a
// permutation of the stored wardrobe.
var ErrReorderInvariant = errors.New("reorder sequence is not a permutation of the stored wardrobe")

// Store is the durable wardrobe. Ordering is user-significant and is the
// only index; identity is the locator value itself.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting to the given file path. The file is
// created on first mutation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current ordered sequence. Missing state yields the
// empty sequence; a corrupt stored value also yields the empty sequence,
// the wardrobe self-heals by starting fresh (source images remain
// on-device regardless).
func (s *Store) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Append adds a locator at the end and persists before returning. A
// locator already present is left in place, so no duplicate can appear.
func (s *Store) Append(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.loadLocked()
	if err != nil {
		return err
	}

	for _, existing := range images {
		if existing == ref {
			return nil
		}
	}

	return s.persistLocked(append(images, ref))
}

// Reorder replaces the sequence wholesale with the caller-supplied order.
// The new order must be a permutation of the current sequence; anything
// else fails with ErrReorderInvariant and leaves stored state untouched.
func (s *Store) Reorder(newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}

	if !samePermutation(current, newOrder) {
		return ErrReorderInvariant
	}

	ordered := make([]string, len(newOrder))
	copy(ordered, newOrder)
	return s.persistLocked(ordered)
}

// Remove deletes the first occurrence of ref and persists the result.
// Removing a locator that is not present is a no-op, not an error.
func (s *Store) Remove(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i, existing := range images {
		if existing == ref {
			return s.persistLocked(append(images[:i], images[i+1:]...))
		}
	}

	return nil
}

func (s *Store) loadLocked() ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read wardrobe state: %w", err)
	}

	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		slog.Warn("Wardrobe state unreadable, starting fresh", "path", s.path, "error", err)
		return []string{}, nil
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}

// persistLocked replaces the stored value atomically: the new sequence is
// written to a temp file and renamed over the key, so readers never see a
// partially written list.
func (s *Store) persistLocked(images []string) error {
	raw, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode wardrobe state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create wardrobe directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write wardrobe state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace wardrobe state: %w", err)
	}

	return nil
}

func samePermutation(current, proposed []string) bool {
	if len(current) != len(proposed) {
		return false
	}

	counts := make(map[string]int, len(current))
	for _, ref := range current {
		counts[ref]++
	}
	for _, ref := range proposed {
		counts[ref]--
		if counts[ref] < 0 {
			return false
		}
	}
	return true
}
