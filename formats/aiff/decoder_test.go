// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockAiffReader struct {
	samples []int
	offset  int
	fail    bool
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.fail {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	if m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func newTestSource(r aiffReader, bitDepth, bufSize int) *source {
	return &source{
		dec:        r,
		sampleRate: 44100,
		channels:   2,
		bitDepth:   bitDepth,
		buf:        &goaudio.IntBuffer{Data: make([]int, bufSize)},
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("RIFF....WAVEfmt ")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q): expected ErrNotAiffFile, got %v", data, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newTestSource(&mockAiffReader{}, 16, 512)

	if s.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("Channels() = %d", s.Channels())
	}
	if s.BufSize() != 512 {
		t.Errorf("BufSize() = %d", s.BufSize())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		depth int
		in    []int
		want  []float32
	}{
		{"16-bit", 16, []int{0, 16384, -32768, 32767}, []float32{0, 0.5, -1, 32767.0 / 32768}},
		{"24-bit", 24, []int{4194304, -8388608}, []float32{0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSource(&mockAiffReader{samples: tt.in}, tt.depth, 2)
			out := make([]float32, len(tt.in))

			n, err := s.ReadSamples(out)
			if err != nil && err != io.EOF {
				t.Fatalf("ReadSamples: %v", err)
			}
			if n != len(tt.in) {
				t.Fatalf("n = %d, want %d", n, len(tt.in))
			}
			for i := range tt.want {
				if math.Abs(float64(out[i]-tt.want[i])) > 1e-6 {
					t.Errorf("sample %d: got %f want %f", i, out[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	s := newTestSource(&mockAiffReader{samples: []int{1, 2}}, 16, 8)

	n, err := s.ReadSamples(make([]float32, 8))
	if n != 2 || err != io.EOF {
		t.Errorf("expected 2, io.EOF; got %d, %v", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	s := newTestSource(&mockAiffReader{fail: true}, 16, 8)

	_, err := s.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected wrapped io.ErrUnexpectedEOF, got %v", err)
	}
}
