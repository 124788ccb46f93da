// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"cmp"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Scan walks fsys and returns a sound for every regular file that
// supported accepts, sorted by path. Paths are slash-rooted relative to
// fsys, e.g. "/drums/kick.ogg". Hidden files and directories are skipped.
func Scan(fsys fs.FS, supported func(name string) bool) ([]Sound, error) {
	var sounds []Sound

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !supported(p) {
			return nil
		}

		sounds = append(sounds, New("/"+p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: scan: %w", err)
	}

	SortByPath(sounds)
	return sounds, nil
}

// SortByPath orders sounds by path in place.
func SortByPath(sounds []Sound) {
	slices.SortFunc(sounds, func(a, b Sound) int { return cmp.Compare(a.Path, b.Path) })
}

// SortByName orders sounds by display name, falling back to path for ties.
func SortByName(sounds []Sound) {
	slices.SortFunc(sounds, func(a, b Sound) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName())),
			cmp.Compare(a.Path, b.Path),
		)
	})
}

// Categories returns the distinct categories in first-seen order.
func Categories(sounds []Sound) []string {
	return lo.Uniq(lo.Map(sounds, func(s Sound, _ int) string { return s.Category() }))
}

// GroupByCategory buckets playable sounds by category.
func GroupByCategory(sounds []Sound) map[string][]Sound {
	return lo.GroupBy(lo.Filter(sounds, func(s Sound, _ int) bool { return s.Playable() }),
		func(s Sound) string { return s.Category() })
}
