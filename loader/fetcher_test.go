// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio/drums/big kick.wav" {
			http.Error(w, "Audio file not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("RIFF"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL + "/")

	data, err := f.Fetch(context.Background(), "/drums/big kick.wav")
	if err != nil || string(data) != "RIFF" {
		t.Fatalf("Fetch() = %q, %v", data, err)
	}

	if _, err := f.Fetch(context.Background(), "/missing.wav"); !errors.Is(err, ErrStatus) {
		t.Errorf("Fetch(missing) = %v, want ErrStatus", err)
	}
}

func TestDirFetcher(t *testing.T) {
	t.Parallel()

	f := DirFetcher{FS: fstest.MapFS{"drums/kick.wav": {Data: []byte("data")}}}

	data, err := f.Fetch(context.Background(), "/drums/kick.wav")
	if err != nil || string(data) != "data" {
		t.Fatalf("Fetch() = %q, %v", data, err)
	}

	if _, err := f.Fetch(context.Background(), "/../drums/snare.wav"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Fetch(missing) = %v, want fs.ErrNotExist", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "/drums/kick.wav"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch(cancelled) = %v", err)
	}
}
