package speech

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"text-recitation/config"

	shellwords "github.com/mattn/go-shellwords"
)

// execModel runs the recognizer as a subprocess, one process per session.
// The protocol over stdin is length-prefixed binary: a 4-byte little-endian
// chunk length followed by that many bytes of 16-bit PCM, with a zero length
// meaning flush. The process answers each chunk with one JSON line on stdout:
// {"boundary": bool, "text": "..."}.
type execModel struct {
	args      []string
	modelPath string
}

func newExecModel(cfg config.SpeechConfig) (*execModel, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse recognizer command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("recognizer command is empty")
	}
	return &execModel{args: args, modelPath: cfg.ModelPath}, nil
}

func (m *execModel) NewSession(sampleRate int) (Session, error) {
	args := append([]string{}, m.args[1:]...)
	args = append(args, "--model", m.modelPath, "--sample-rate", strconv.Itoa(sampleRate))
	cmd := exec.Command(m.args[0], args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("recognizer stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("recognizer stdout: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start recognizer: %w", err)
	}
	return &execSession{cmd: cmd, stdin: stdin, out: bufio.NewReader(stdout), stderr: &stderr}, nil
}

type chunkReply struct {
	Boundary bool   `json:"boundary"`
	Text     string `json:"text"`
}

type execSession struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	out     *bufio.Reader
	stderr  *bytes.Buffer
	pending string
	closed  bool
}

func (s *execSession) AcceptWaveform(pcm []byte) (bool, error) {
	if err := s.writeChunk(pcm); err != nil {
		return false, err
	}
	reply, err := s.readReply()
	if err != nil {
		return false, err
	}
	if reply.Boundary {
		s.pending = reply.Text
	}
	return reply.Boundary, nil
}

func (s *execSession) Result() (string, error) {
	return s.pending, nil
}

func (s *execSession) FinalResult() (string, error) {
	if err := s.writeChunk(nil); err != nil {
		return "", err
	}
	reply, err := s.readReply()
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

func (s *execSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("recognizer exited: %w: %s", err, s.stderr.String())
	}
	return nil
}

func (s *execSession) writeChunk(pcm []byte) error {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(pcm)))
	if _, err := s.stdin.Write(header[:]); err != nil {
		return s.protocolErr("write chunk header", err)
	}
	if len(pcm) > 0 {
		if _, err := s.stdin.Write(pcm); err != nil {
			return s.protocolErr("write chunk", err)
		}
	}
	return nil
}

func (s *execSession) readReply() (chunkReply, error) {
	line, err := s.out.ReadBytes('\n')
	if err != nil {
		return chunkReply{}, s.protocolErr("read reply", err)
	}
	var reply chunkReply
	if err := json.Unmarshal(line, &reply); err != nil {
		return chunkReply{}, s.protocolErr("decode reply", err)
	}
	return reply, nil
}

func (s *execSession) protocolErr(op string, err error) error {
	if msg := s.stderr.String(); msg != "" {
		return fmt.Errorf("recognizer %s: %w: %s", op, err, msg)
	}
	return fmt.Errorf("recognizer %s: %w", op, err)
}
