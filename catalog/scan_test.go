// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"path"
	"slices"
	"testing"
	"testing/fstest"
)

func audioOnly(name string) bool {
	switch path.Ext(name) {
	case ".ogg", ".mp3", ".wav":
		return true
	}
	return false
}

func TestScan(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"drums/snare.ogg":    {Data: []byte("x")},
		"drums/kick.ogg":     {Data: []byte("x")},
		"airhorn.mp3":        {Data: []byte("x")},
		"notes.txt":          {Data: []byte("x")},
		".trash/old.ogg":     {Data: []byte("x")},
		"voices/.hidden.ogg": {Data: []byte("x")},
		"voices/hello.wav":   {Data: []byte("x")},
	}

	sounds, err := Scan(fsys, audioOnly)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := make([]string, len(sounds))
	for i, s := range sounds {
		got[i] = s.Path
		if s.Type != KindSound || s.Name != s.Path {
			t.Errorf("unexpected entry %+v", s)
		}
	}

	want := []string{"/airhorn.mp3", "/drums/kick.ogg", "/drums/snare.ogg", "/voices/hello.wav"}
	if !slices.Equal(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScan_Empty(t *testing.T) {
	t.Parallel()

	sounds, err := Scan(fstest.MapFS{}, audioOnly)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(sounds) != 0 {
		t.Errorf("expected no sounds, got %v", sounds)
	}
}

func TestSortByName(t *testing.T) {
	t.Parallel()

	sounds := []Sound{New("/z/alpha.ogg"), New("/a/Charlie.ogg"), New("/m/bravo.ogg")}
	SortByName(sounds)

	want := []string{"/z/alpha.ogg", "/m/bravo.ogg", "/a/Charlie.ogg"}
	for i, s := range sounds {
		if s.Path != want[i] {
			t.Errorf("position %d: got %s, want %s", i, s.Path, want[i])
		}
	}
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	sounds := []Sound{
		New("/drums/kick.ogg"),
		New("/fx/boom.ogg"),
		New("/drums/snare.ogg"),
		{Type: KindFolder, Name: "/drums", Path: "/drums"},
	}

	groups := GroupByCategory(sounds)
	if len(groups["drums"]) != 2 || len(groups["fx"]) != 1 {
		t.Errorf("unexpected grouping %v", groups)
	}

	if got := Categories(sounds[:3]); !slices.Equal(got, []string{"drums", "fx"}) {
		t.Errorf("Categories() = %v", got)
	}
}
