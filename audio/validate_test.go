package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, channels, bitDepth, format int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, bitDepth, channels, format)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: 16000},
		Data:           make([]int, 1600*channels),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
	return path
}

func TestValidateWAV(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		bitDepth int
		format   int
		wantErr  string
	}{
		{"mono 16-bit pcm", 1, 16, 1, ""},
		{"stereo", 2, 16, 1, "audio must be mono"},
		{"24-bit", 1, 24, 1, "sample width must be 16-bit"},
		{"8-bit", 1, 8, 1, "sample width must be 16-bit"},
		{"alaw", 1, 16, 6, "must be PCM encoded"},
		{"mulaw", 1, 16, 7, "must be PCM encoded"},
		// channel check wins over sample width: checks short-circuit in order
		{"stereo 24-bit", 2, 24, 1, "audio must be mono"},
		{"stereo alaw", 2, 16, 6, "audio must be mono"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWAV(writeWAV(t, tt.channels, tt.bitDepth, tt.format))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateWAV: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateWAV accepted %s", tt.name)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWAVGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not audio at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := ValidateWAV(path)
	if err == nil {
		t.Fatal("ValidateWAV accepted garbage")
	}
	if !strings.HasPrefix(err.Error(), "not a valid WAV file:") {
		t.Errorf("error = %q, want not-a-valid-WAV prefix", err)
	}
}

func TestValidateWAVMissingFile(t *testing.T) {
	err := ValidateWAV(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("ValidateWAV accepted a missing file")
	}
	if !strings.HasPrefix(err.Error(), "not a valid WAV file:") {
		t.Errorf("error = %q, want not-a-valid-WAV prefix", err)
	}
}
