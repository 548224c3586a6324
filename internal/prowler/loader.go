package prowler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches the file names Prowler writes by default.
const DefaultPattern = "prowler-output-*.json"

var (
	// ErrFileNotFound is returned when a results file does not exist.
	ErrFileNotFound = errors.New("results file not found")
	// ErrNoResults is returned when a directory search finds no results file.
	ErrNoResults = errors.New("no Prowler results file found")
)

// ParseError reports results content that is not a well-formed findings array.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads a Prowler JSON results file.
func LoadFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	findings, err := Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	slog.Debug("Loaded findings", "path", path, "count", len(findings))
	return findings, nil
}

// Decode parses a JSON array of findings.
func Decode(data []byte) ([]Finding, error) {
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, err
	}
	if findings == nil {
		// A bare "null" decodes without error but is not a findings array.
		return nil, errors.New("expected a JSON array of findings")
	}
	return findings, nil
}

// LoadPair loads the before and after results files concurrently.
// The first failure cancels the other load.
func LoadPair(ctx context.Context, beforePath, afterPath string) (before, after []Finding, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		before, err = loadWithContext(gctx, beforePath)
		return err
	})
	g.Go(func() error {
		var err error
		after, err = loadWithContext(gctx, afterPath)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func loadWithContext(ctx context.Context, path string) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	findings, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}

// FindLatest returns the most recently modified file in dir matching pattern.
func FindLatest(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("search %s for %q: %w", dir, pattern, err)
	}

	var (
		latest  string
		latestT int64
	)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if t := info.ModTime().UnixNano(); latest == "" || t > latestT {
			latest, latestT = m, t
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w in %s matching %q", ErrNoResults, dir, pattern)
	}
	return latest, nil
}
