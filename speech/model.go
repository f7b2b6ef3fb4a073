package speech

import (
	"errors"
	"fmt"
	"os"

	"text-recitation/config"

	"github.com/rs/zerolog/log"
)

// ErrModelNotFound means the configured model path does not exist. Startup
// treats it as fatal; the service cannot score recitations without a model.
var ErrModelNotFound = errors.New("recognition model not found")

// Model is the handle to a loaded recognition model. It is created once at
// startup, shared by every request, and safe for concurrent use. Decoding
// state lives in per-call Sessions, never in the model itself.
type Model interface {
	NewSession(sampleRate int) (Session, error)
}

// Session is a stateful recognizer bound to one audio stream. Sessions are
// single-use: one per recognition call, closed when the call ends, never
// shared between goroutines.
type Session interface {
	// AcceptWaveform feeds one chunk of little-endian 16-bit PCM and
	// reports whether the recognizer crossed an utterance boundary.
	AcceptWaveform(pcm []byte) (bool, error)
	// Result returns the transcript of the utterance ended by the last
	// boundary AcceptWaveform reported.
	Result() (string, error)
	// FinalResult flushes the recognizer and returns any trailing text.
	FinalResult() (string, error)
	Close() error
}

// LoadModel verifies the configured model path and builds the backend model
// handle. A missing path yields ErrModelNotFound so callers can tell a
// misconfigured deployment apart from a runtime decode failure.
func LoadModel(cfg config.SpeechConfig) (Model, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrModelNotFound, cfg.ModelPath)
		}
		return nil, fmt.Errorf("stat model path: %w", err)
	}
	m, err := newExecModel(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("model_path", cfg.ModelPath).Msg("recognition model loaded")
	return m, nil
}
