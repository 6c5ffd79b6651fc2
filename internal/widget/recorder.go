package widget

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// CaptureSession is one microphone capture in progress. Close must release
// the underlying media stream regardless of which path stops the session.
type CaptureSession interface {
	// Result returns a playable URL for the audio captured so far.
	Result() (url string, err error)
	// Close releases the capture stream. Safe to call more than once.
	Close() error
}

// CaptureDevice opens capture sessions. The transport layer injects the
// real device; tests inject a fake.
type CaptureDevice interface {
	Open(ctx context.Context) (CaptureSession, error)
}

// Recorder is the audio-notes state machine: idle → recording → idle.
// A Start while already recording is a no-op guard, and Stop always
// releases the session, success or failure.
type Recorder struct {
	mu      sync.Mutex
	device  CaptureDevice
	session CaptureSession
}

// NewRecorder creates a Recorder over the given device.
func NewRecorder(device CaptureDevice) *Recorder {
	return &Recorder{device: device}
}

// Recording reports whether a capture session is open.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// Start opens a capture session. When one is already open it returns
// false without side effects.
func (r *Recorder) Start(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return false, nil
	}
	session, err := r.device.Open(ctx)
	if err != nil {
		return false, err
	}
	r.session = session
	return true, nil
}

// Stop closes the session and appends the captured audio as a new note
// with the user-supplied label. The stream is released on every path,
// including result errors. Stop with no session running returns the notes
// unchanged.
func (r *Recorder) Stop(notes []model.AudioNote, label string, now time.Time) ([]model.AudioNote, error) {
	r.mu.Lock()
	session := r.session
	r.session = nil
	r.mu.Unlock()

	if session == nil {
		return notes, nil
	}
	defer session.Close()

	url, err := session.Result()
	if err != nil {
		return notes, err
	}

	out := make([]model.AudioNote, len(notes), len(notes)+1)
	copy(out, notes)
	return append(out, model.AudioNote{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: now,
		URL:       url,
	}), nil
}
