// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/soundboard/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "wav"}
	registry.Register("wav", decoder)

	tests := []struct {
		key    string
		wantOK bool
	}{
		{"wav", true},
		{"WAV", true},
		{".wav", true},
		{"mp3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := registry.Get(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && got != decoder {
				t.Errorf("Get(%q) returned a different decoder", tt.key)
			}
		})
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	ogg := &stubDecoder{name: "ogg"}
	registry.Register("ogg", ogg)

	d, err := registry.ForPath("/drums/Kick.OGG")
	if err != nil {
		t.Fatalf("ForPath() error = %v", err)
	}
	if d != ogg {
		t.Error("ForPath() returned wrong decoder")
	}

	for _, p := range []string{"/drums/kick", "/drums/kick.flac", ""} {
		if _, err := registry.ForPath(p); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ForPath(%q) error = %v, want ErrUnknownFormat", p, err)
		}
		if registry.Supports(p) {
			t.Errorf("Supports(%q) = true", p)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"ogg", "MP3", ".wav"} {
		registry.Register(f, &stubDecoder{name: f})
	}

	if got, want := registry.Formats(), []string{"mp3", "ogg", "wav"}; !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder)
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
		}()
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Get() after concurrent registration failed")
	}
}
