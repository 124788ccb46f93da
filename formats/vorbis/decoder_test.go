// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type mockOggReader struct {
	channels int
	samples  []float32
	err      error
}

func (m *mockOggReader) SampleRate() int { return 48000 }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggReader{channels: 2, samples: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}}}

	if s.BufSize() != 8192 {
		t.Errorf("BufSize() = %d", s.BufSize())
	}

	// odd-length buffers are trimmed to whole frames
	out := make([]float32, 5)
	n, err := s.ReadSamples(out)
	if err != nil || n != 4 {
		t.Fatalf("expected 4, nil; got %d, %v", n, err)
	}
	if out[2] != 0.2 || out[3] != -0.2 {
		t.Errorf("unexpected samples %v", out[:n])
	}

	n, _ = s.ReadSamples(out)
	if n != 2 {
		t.Errorf("expected remaining 2 samples, got %d", n)
	}

	if _, err := s.ReadSamples(out); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestSource_ReadSamples_ShortBuffer(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggReader{channels: 2, samples: []float32{1, 1}}}

	n, err := s.ReadSamples(make([]float32, 1))
	if n != 0 || err != nil {
		t.Errorf("expected 0, nil; got %d, %v", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockOggReader{channels: 1, err: io.ErrUnexpectedEOF}}

	_, err := s.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected wrapped io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not ogg"))); err == nil {
		t.Fatal("expected an error for non-ogg input")
	}
}
