/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package fixture loads the static, read-only test cases a benchmark
// run evaluates against. Each case is a directory holding the source
// files a participant may explore plus a ground_truth/ directory that
// is withheld from participants and consulted only by the scorer.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// GroundTruthDir is the per-case directory withheld from participants.
const GroundTruthDir = "ground_truth"

// ErrBadFixture marks fixture-store configuration problems. Any error
// wrapping it aborts a run before the first case executes.
var ErrBadFixture = errors.New("invalid fixture")

// Meta is the project metadata from a case's metadata.json. It is the
// only case information shown to the participant up front.
type Meta struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Domain      string   `json:"domain"`
	Files       []string `json:"files"`
}

// Facts is the authoritative ground-truth record from
// ground_truth/facts.json, used for factual-accuracy judging.
type Facts struct {
	MainPurpose  string   `json:"main_purpose"`
	Dependencies []string `json:"dependencies"`
	RunCommand   string   `json:"run_command"`
	KeyFeatures  []string `json:"key_features"`
	MustMention  []string `json:"must_mention"`
	MainFile     string   `json:"main_file"`
}

// TestCase is one loaded benchmark case. Immutable once loaded.
type TestCase struct {
	ID   string
	Root string
	Meta Meta

	// GroundTruthREADME is the reference README, empty if the case
	// ships none.
	GroundTruthREADME string
	Facts             Facts
}

// Store discovers and loads test cases beneath a root directory.
type Store struct {
	root string
}

// NewStore opens a fixture root.
func NewStore(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: fixture root %q: %v", ErrBadFixture, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: fixture root %q is not a directory", ErrBadFixture, root)
	}
	return &Store{root: root}, nil
}

// Discover returns the IDs of all cases under the root, sorted.
// Dot-directories are skipped.
func (s *Store) Discover() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading fixture root: %v", ErrBadFixture, err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads and validates a single case.
func (s *Store) Load(id string) (*TestCase, error) {
	root := filepath.Join(s.root, id)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: test case %q not found", ErrBadFixture, id)
	}

	tc := &TestCase{ID: id, Root: root}

	if err := readJSON(filepath.Join(root, "metadata.json"), &tc.Meta); err != nil {
		return nil, fmt.Errorf("%w: case %q: %v", ErrBadFixture, id, err)
	}
	if err := readJSON(filepath.Join(root, GroundTruthDir, "facts.json"), &tc.Facts); err != nil {
		return nil, fmt.Errorf("%w: case %q: %v", ErrBadFixture, id, err)
	}

	// The reference README is optional; facts.json alone drives
	// factual judging.
	if b, err := os.ReadFile(filepath.Join(root, GroundTruthDir, "README.md")); err == nil {
		tc.GroundTruthREADME = string(b)
	}

	return tc, nil
}

// LoadAll loads the given cases, or every discovered case when ids is
// empty. Any load failure is fatal: a run must not start with a
// partially valid fixture set.
func (s *Store) LoadAll(ids []string) ([]*TestCase, error) {
	if len(ids) == 0 {
		var err error
		ids, err = s.Discover()
		if err != nil {
			return nil, err
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no test cases under %q", ErrBadFixture, s.root)
	}
	cases := make([]*TestCase, 0, len(ids))
	for _, id := range ids {
		tc, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %v", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing %s: %v", filepath.Base(path), err)
	}
	return nil
}
