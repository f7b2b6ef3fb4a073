package speech

// MockModel is a scripted in-memory backend used by tests. Each session
// reports an utterance boundary per chunk while more than one segment
// remains, and returns the last segment from the final flush.
type MockModel struct {
	Segments []string
	Err      error

	// Sessions counts NewSession calls; every call must get a fresh one.
	Sessions    int
	SampleRates []int
	ChunkSizes  []int
}

func (m *MockModel) NewSession(sampleRate int) (Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Sessions++
	m.SampleRates = append(m.SampleRates, sampleRate)
	return &mockSession{model: m, remaining: m.Segments}, nil
}

type mockSession struct {
	model     *MockModel
	remaining []string
	pending   string
}

func (s *mockSession) AcceptWaveform(pcm []byte) (bool, error) {
	s.model.ChunkSizes = append(s.model.ChunkSizes, len(pcm))
	if len(s.remaining) > 1 {
		s.pending = s.remaining[0]
		s.remaining = s.remaining[1:]
		return true, nil
	}
	return false, nil
}

func (s *mockSession) Result() (string, error) {
	return s.pending, nil
}

func (s *mockSession) FinalResult() (string, error) {
	if len(s.remaining) == 0 {
		return "", nil
	}
	text := s.remaining[0]
	s.remaining = nil
	return text, nil
}

func (s *mockSession) Close() error { return nil }
