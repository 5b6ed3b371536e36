/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package explore is the read-only tool surface a participant uses to
// observe a test-case repository: directory listings and file reads,
// with the case's ground-truth directory invisible to both.
package explore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"chainguard.dev/aeobench/fixture"
)

var (
	// ErrNotFound covers missing paths and any path that escapes the
	// case root or touches ground truth. Escapes are reported as
	// not-found rather than forbidden so the error itself does not
	// confirm that ground truth exists.
	ErrNotFound = errors.New("path not found")

	// ErrNotReadable covers directories passed to ReadFile, binary
	// content, and oversized files.
	ErrNotReadable = errors.New("file not readable")
)

// MaxFileSize bounds ReadFile payloads. Fixture sources are small;
// anything larger is not useful exploration context.
const MaxFileSize = 256 << 10

// Surface exposes one test case for exploration. It performs pure
// reads against the fixture store and is safe for concurrent use
// across cases.
type Surface struct {
	root string
}

// NewSurface returns the exploration surface for a test case.
func NewSurface(tc *fixture.TestCase) *Surface {
	return &Surface{root: tc.Root}
}

// resolve maps a participant-supplied slash path to a filesystem path
// under the case root, refusing escapes and ground-truth access. The
// checks are lexical: fixtures are plain directories with no symlinks.
func (s *Surface) resolve(p string) (string, error) {
	if p == "" {
		p = "."
	}
	rel := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == fixture.GroundTruthDir {
			return "", fmt.Errorf("%w: %s", ErrNotFound, p)
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// ListDirectory returns the entry names directly under the given path,
// sorted, with directories suffixed "/". Dotfiles and the ground-truth
// directory are omitted.
func (s *Surface) ListDirectory(p string) ([]string, error) {
	target, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, p)
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name[0] == '.' || name == fixture.GroundTruthDir {
			continue
		}
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

// ReadFile returns the text content of the file at the given path.
func (s *Surface) ReadFile(p string) (string, error) {
	target, err := s.resolve(p)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotReadable, p)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrNotReadable, p, MaxFileSize)
	}
	b, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return "", fmt.Errorf("%w: %s is binary", ErrNotReadable, p)
	}
	return string(b), nil
}
