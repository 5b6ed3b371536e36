/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package explore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/aeobench/fixture"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// newTestSurface builds a throwaway fixture with a source tree, a
// nested directory, a binary blob, and ground truth that must stay
// hidden.
func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	write("main.py", "print('hello')\n")
	write("lib/util.py", "def helper(): pass\n")
	write(".hidden", "secret\n")
	write("blob.bin", "PK\x03\x04\x00data")
	write("ground_truth/README.md", "# Reference\n")
	write("ground_truth/facts.json", "{}")
	write("lib/ground_truth/leak.txt", "leaked\n")

	return NewSurface(&fixture.TestCase{ID: "t", Root: root})
}

func TestListDirectory(t *testing.T) {
	s := newTestSurface(t)

	got, err := s.ListDirectory(".")
	require.NoError(t, err)

	// Sorted; dirs suffixed; dotfiles and ground_truth omitted.
	want := []string{"blob.bin", "lib/", "main.py"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListDirectory(.) mismatch (-want +got):\n%s", diff)
	}

	got, err = s.ListDirectory("lib")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"util.py"}, got); diff != "" {
		t.Errorf("ListDirectory(lib) mismatch (-want +got):\n%s", diff)
	}
}

func TestListDirectoryErrors(t *testing.T) {
	s := newTestSurface(t)

	for _, p := range []string{"nope", "main.py", "../", "/etc"} {
		if _, err := s.ListDirectory(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("ListDirectory(%q) = %v, want ErrNotFound", p, err)
		}
	}
}

func TestReadFile(t *testing.T) {
	s := newTestSurface(t)

	got, err := s.ReadFile("main.py")
	require.NoError(t, err)
	require.Equal(t, "print('hello')\n", got)

	got, err = s.ReadFile("lib/util.py")
	require.NoError(t, err)
	require.Contains(t, got, "helper")
}

func TestReadFileErrors(t *testing.T) {
	s := newTestSurface(t)

	if _, err := s.ReadFile("missing.py"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile(missing.py) = %v, want ErrNotFound", err)
	}
	if _, err := s.ReadFile("lib"); !errors.Is(err, ErrNotReadable) {
		t.Errorf("ReadFile(lib) = %v, want ErrNotReadable", err)
	}
	if _, err := s.ReadFile("blob.bin"); !errors.Is(err, ErrNotReadable) {
		t.Errorf("ReadFile(blob.bin) = %v, want ErrNotReadable", err)
	}
}

func TestGroundTruthInvisible(t *testing.T) {
	s := newTestSurface(t)

	// Every spelling of a ground-truth path must look like it does
	// not exist, including traversal attempts and nested instances.
	paths := []string{
		"ground_truth",
		"ground_truth/README.md",
		"ground_truth/facts.json",
		"./ground_truth/README.md",
		"lib/../ground_truth/facts.json",
		"lib/ground_truth/leak.txt",
		"../word_counter/ground_truth/facts.json",
	}
	for _, p := range paths {
		if _, err := s.ReadFile(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("ReadFile(%q) = %v, want ErrNotFound", p, err)
		}
		if _, err := s.ListDirectory(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("ListDirectory(%q) = %v, want ErrNotFound", p, err)
		}
	}

	// And listings never mention it.
	entries, err := s.ListDirectory(".")
	require.NoError(t, err)
	for _, e := range entries {
		if strings.Contains(e, "ground_truth") {
			t.Errorf("listing leaked ground truth entry %q", e)
		}
	}
}

func TestMaxFileSize(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("x", MaxFileSize+1)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), []byte(big), 0o644))

	s := NewSurface(&fixture.TestCase{ID: "t", Root: root})
	if _, err := s.ReadFile("big.txt"); !errors.Is(err, ErrNotReadable) {
		t.Errorf("ReadFile(big.txt) = %v, want ErrNotReadable", err)
	}
}

func TestState(t *testing.T) {
	st := NewState()
	require.Equal(t, 0, st.Steps())
	require.Equal(t, 1, st.Advance())
	require.Equal(t, 2, st.Advance())

	st.Record(Observation{Action: "read_file", Path: "main.py", Payload: "content"})
	st.Record(Observation{Action: "list_directory", Path: ".", Payload: "oops", IsError: true})

	obs := st.Observations()
	require.Len(t, obs, 2)
	require.Equal(t, "main.py", obs[0].Path)
	require.True(t, obs[1].IsError)
}
