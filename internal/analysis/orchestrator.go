package analysis

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JonathanAHerrera/Fitprint/internal/models"
)

// Phase is the externally observable state of one capture-to-report cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseUploading Phase = "uploading"
	PhaseAnalyzing Phase = "analyzing"
	PhaseReady     Phase = "ready"
	PhaseFailed    Phase = "failed"
)

// Pending reports whether a request is outstanding. Uploading and
// Analyzing are one pending state for concurrency control; the split only
// exists for progress display.
func (p Phase) Pending() bool {
	return p == PhaseUploading || p == PhaseAnalyzing
}

// MediaReader dereferences an image locator to bytes.
type MediaReader interface {
	Read(ctx context.Context, ref string) ([]byte, error)
}

// ImageAnalyzer is the service boundary the orchestrator drives.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, userID string, image []byte) (*models.AnalysisResult, error)
}

// Orchestrator ties a media source to the analysis client and owns the
// phase state machine for one capture session. It guarantees at most one
// in-flight request; instances are not shared across sessions.
type Orchestrator struct {
	media    MediaReader
	analyzer ImageAnalyzer

	mu        sync.Mutex
	phase     Phase
	result    *models.AnalysisResult
	err       error
	listeners []func(Phase)
}

// NewOrchestrator creates an idle orchestrator for one capture session.
func NewOrchestrator(media MediaReader, analyzer ImageAnalyzer) *Orchestrator {
	return &Orchestrator{
		media:    media,
		analyzer: analyzer,
		phase:    PhaseIdle,
	}
}

// Subscribe registers a listener invoked once per phase transition.
// Listeners run synchronously on the transitioning goroutine.
func (o *Orchestrator) Subscribe(fn func(Phase)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Result returns the stored analysis result, non-nil only in PhaseReady.
func (o *Orchestrator) Result() *models.AnalysisResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Err returns the classified failure, non-nil only in PhaseFailed.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Submit runs one capture-to-report cycle: dereference the locator
// (Uploading), invoke the analysis service (Analyzing), then settle in
// Ready or Failed. Allowed only from Idle or Failed; a pending cycle
// rejects with ErrInFlight and a held result rejects with ErrNeedsReset.
// There is no mid-flight cancellation beyond ctx expiry ending the
// underlying call; no automatic retry, a retry is a fresh Submit.
func (o *Orchestrator) Submit(ctx context.Context, imageRef, userID string) (*models.AnalysisResult, error) {
	o.mu.Lock()
	switch {
	case o.phase.Pending():
		o.mu.Unlock()
		return nil, ErrInFlight
	case o.phase == PhaseReady:
		o.mu.Unlock()
		return nil, ErrNeedsReset
	}
	o.result = nil
	o.err = nil
	o.transitionLocked(PhaseUploading)
	o.mu.Unlock()

	image, err := o.media.Read(ctx, imageRef)
	if err != nil {
		return nil, o.fail(err)
	}

	o.setPhase(PhaseAnalyzing)

	result, err := o.analyzer.AnalyzeImage(ctx, userID, image)
	if err != nil {
		return nil, o.fail(err)
	}

	o.mu.Lock()
	o.result = result
	o.transitionLocked(PhaseReady)
	o.mu.Unlock()
	return result, nil
}

// Reset returns the orchestrator to Idle from a terminal phase, discarding
// the stored result or error so the session can be reused.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase.Pending() {
		return ErrInFlight
	}
	if o.phase == PhaseIdle {
		return nil
	}
	o.result = nil
	o.err = nil
	o.transitionLocked(PhaseIdle)
	return nil
}

func (o *Orchestrator) fail(err error) error {
	slog.Warn("Analysis failed", "error", err)
	o.mu.Lock()
	o.err = err
	o.transitionLocked(PhaseFailed)
	o.mu.Unlock()
	return err
}

func (o *Orchestrator) setPhase(p Phase) {
	o.mu.Lock()
	o.transitionLocked(p)
	o.mu.Unlock()
}

func (o *Orchestrator) transitionLocked(p Phase) {
	o.phase = p
	for _, fn := range o.listeners {
		fn(p)
	}
}
