package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"
)

// chunkFrames is how many PCM frames are fed to the recognizer per step.
const chunkFrames = 4000

// ErrBadFormat means audio slipped past the route-boundary validator in a
// shape the engine cannot decode. The message matches what a caller feeding
// the engine directly should see.
var ErrBadFormat = errors.New("audio file must be WAV format mono PCM")

// Engine turns a WAV file into a transcript using the shared model. It is
// safe for concurrent use; each Recognize call gets its own Session.
type Engine struct {
	model Model
}

func NewEngine(model Model) *Engine {
	return &Engine{model: model}
}

// Recognize streams the audio at path through a fresh recognizer session in
// chunkFrames-sized chunks, collecting a transcript segment at every
// utterance boundary plus the final flush, and joins the segments with
// single spaces. Empty audio yields an empty transcript, not an error.
func (e *Engine) Recognize(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	// The route boundary already validated the upload; this re-check keeps
	// the engine safe for callers that skipped it.
	if d.NumChans != 1 || d.BitDepth != 16 || d.WavAudioFormat != 1 {
		return "", ErrBadFormat
	}
	sampleRate := int(d.SampleRate)

	session, err := e.model.NewSession(sampleRate)
	if err != nil {
		return "", fmt.Errorf("create recognizer session: %w", err)
	}
	defer session.Close()

	if err := d.FwdToPCM(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]int, chunkFrames),
	}
	var segments []string
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("recognition aborted: %w", err)
		}
		n, err := d.PCMBuffer(buf)
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read audio: %w", err)
		}
		if n == 0 {
			break
		}
		boundary, err := session.AcceptWaveform(pcmBytes(buf.Data[:n]))
		if err != nil {
			return "", err
		}
		if boundary {
			text, err := session.Result()
			if err != nil {
				return "", err
			}
			if text != "" {
				segments = append(segments, text)
			}
		}
	}

	final, err := session.FinalResult()
	if err != nil {
		return "", err
	}
	if final != "" {
		segments = append(segments, final)
	}

	transcript := strings.Join(segments, " ")
	log.Debug().Int("segments", len(segments)).Int("sample_rate", sampleRate).Msg("recognition finished")
	return transcript, nil
}

func pcmBytes(samples []int) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}
