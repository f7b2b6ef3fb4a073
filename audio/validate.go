package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the fmt-chunk audio format code for uncompressed linear PCM.
const wavFormatPCM = 1

// ValidateWAV checks that the file at path is a WAV container holding mono,
// 16-bit, uncompressed PCM audio. Checks run in order and stop at the first
// failure. Only headers are read; the sample payload is never decoded.
func ValidateWAV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("not a valid WAV file: %v", err)
	}
	defer f.Close()

	parser := riff.New(f)
	if err := parser.ParseHeaders(); err != nil {
		return fmt.Errorf("not a valid WAV file: %v", err)
	}
	if parser.Format != riff.WavFormatID {
		return fmt.Errorf("not a valid WAV file: %s is not a WAVE container", string(parser.Format[:]))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("not a valid WAV file: %v", err)
	}
	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return fmt.Errorf("not a valid WAV file: %v", err)
	}

	if d.NumChans != 1 {
		return errors.New("audio must be mono")
	}
	if d.BitDepth != 16 {
		return errors.New("sample width must be 16-bit")
	}
	if d.WavAudioFormat != wavFormatPCM {
		return errors.New("must be PCM encoded")
	}
	return nil
}
