// Package filesearch lists the files under a directory and ranks them
// against a fuzzy query for the open dialog. Entries excluded by the
// root's .gitignore are skipped.
package filesearch

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	defaultMaxFiles    = 20_000
	defaultMaxFileSize = 10 << 20
)

// Options bounds a scan. Zero values select the defaults.
type Options struct {
	MaxFiles    int
	MaxFileSize int64
}

// Index is the sorted list of files found by Scan.
type Index struct {
	root      string
	paths     []string // slash-separated, relative to root
	truncated bool
}

// Result is one ranked match. Positions are the rune indices in Path that
// matched the query.
type Result struct {
	Path      string
	Score     int
	Positions []int
}

// Scan walks root and collects regular files, skipping .git, ignored
// entries and files over the size limit. Unreadable directories are
// skipped; only cancellation stops the walk with an error.
func Scan(ctx context.Context, root string, opts Options) (*Index, error) {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaultMaxFiles
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = defaultMaxFileSize
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	ig := LoadIgnore(root)
	ix := &Index{root: root}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || ig.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ig.Ignored(rel, false) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > opts.MaxFileSize {
			return nil
		}
		ix.paths = append(ix.paths, rel)
		if len(ix.paths) >= opts.MaxFiles {
			ix.truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, err
	}

	slices.Sort(ix.paths)
	log.Debug().Str("root", root).Int("files", len(ix.paths)).Bool("truncated", ix.truncated).Msg("file index built")
	return ix, nil
}

// Root returns the absolute directory that was scanned.
func (ix *Index) Root() string { return ix.root }

// Paths returns the relative paths in sorted order.
func (ix *Index) Paths() []string { return ix.paths }

// Truncated reports whether the scan stopped at the file limit.
func (ix *Index) Truncated() bool { return ix.truncated }

// Abs resolves a relative path from the index.
func (ix *Index) Abs(rel string) string {
	return filepath.Join(ix.root, filepath.FromSlash(rel))
}

// Match ranks the paths against query and returns at most limit results,
// or all of them when limit is not positive. Matching ignores case. A
// match within the file name beats one that needs the directories; ties
// go to the shorter path. An empty query lists paths in order.
func (ix *Index) Match(query string, limit int) []Result {
	var out []Result
	if query == "" {
		for _, p := range ix.paths {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, Result{Path: p})
		}
		return out
	}

	q := []rune(strings.ToLower(query))
	for _, p := range ix.paths {
		if r, ok := matchPath(q, p); ok {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return len(a.Path) - len(b.Path)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matchPath(q []rune, p string) (Result, bool) {
	dir, base := "", p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		dir, base = p[:i+1], p[i+1:]
	}
	if score, pos, ok := fuzzy(q, []rune(base)); ok {
		shift := len([]rune(dir))
		for i := range pos {
			pos[i] += shift
		}
		return Result{Path: p, Score: score, Positions: pos}, true
	}
	if score, pos, ok := fuzzy(q, []rune(p)); ok {
		return Result{Path: p, Score: score * 4 / 5, Positions: pos}, true
	}
	return Result{}, false
}

// fuzzy matches q as a subsequence of target, taking the earliest
// occurrence of each rune. Consecutive runs and runs starting a word
// score extra; leading gaps and long targets cost a little.
func fuzzy(q, target []rune) (int, []int, bool) {
	pos := make([]int, 0, len(q))
	score := 0
	ti := 0
	for _, qr := range q {
		for ti < len(target) && unicode.ToLower(target[ti]) != qr {
			ti++
		}
		if ti == len(target) {
			return 0, nil, false
		}
		score += 10
		if n := len(pos); n > 0 && pos[n-1] == ti-1 {
			score += 15
		}
		if ti == 0 || isBoundary(target[ti-1]) {
			score += 20
		}
		pos = append(pos, ti)
		ti++
	}
	score -= pos[0]
	score -= len(target) / 8
	return score, pos, true
}

func isBoundary(r rune) bool {
	switch r {
	case '/', '.', '_', '-', ' ':
		return true
	}
	return false
}
