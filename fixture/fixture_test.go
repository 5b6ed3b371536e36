/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	store, err := NewStore("testdata")
	require.NoError(t, err)

	ids, err := store.Discover()
	require.NoError(t, err)

	want := []string{"slugify_text", "word_counter"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	store, err := NewStore("testdata")
	require.NoError(t, err)

	tc, err := store.Load("word_counter")
	require.NoError(t, err)

	require.Equal(t, "word_counter", tc.ID)
	require.Equal(t, "word_counter", tc.Meta.Name)
	require.Equal(t, "Python", tc.Meta.Language)
	require.Contains(t, tc.Meta.Files, "wordcount.py")
	require.Empty(t, tc.Facts.Dependencies)
	require.Equal(t, "python wordcount.py [files...]", tc.Facts.RunCommand)
	require.Contains(t, tc.GroundTruthREADME, "Word Counter")
}

func TestLoadUnknownCase(t *testing.T) {
	store, err := NewStore("testdata")
	require.NoError(t, err)

	_, err = store.Load("no_such_case")
	if !errors.Is(err, ErrBadFixture) {
		t.Errorf("Load() = %v, want ErrBadFixture", err)
	}
}

func TestLoadMissingMetadata(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "broken", GroundTruthDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken", GroundTruthDir, "facts.json"), []byte(`{}`), 0o644))

	store, err := NewStore(root)
	require.NoError(t, err)

	_, err = store.Load("broken")
	if !errors.Is(err, ErrBadFixture) {
		t.Errorf("Load() without metadata.json = %v, want ErrBadFixture", err)
	}
}

func TestLoadMissingFacts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nofacts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nofacts", "metadata.json"), []byte(`{"name":"nofacts"}`), 0o644))

	store, err := NewStore(root)
	require.NoError(t, err)

	_, err = store.Load("nofacts")
	if !errors.Is(err, ErrBadFixture) {
		t.Errorf("Load() without facts.json = %v, want ErrBadFixture", err)
	}
}

func TestLoadAll(t *testing.T) {
	store, err := NewStore("testdata")
	require.NoError(t, err)

	cases, err := store.LoadAll(nil)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	// One bad ID poisons the whole set.
	_, err = store.LoadAll([]string{"word_counter", "missing"})
	if !errors.Is(err, ErrBadFixture) {
		t.Errorf("LoadAll() with bad id = %v, want ErrBadFixture", err)
	}
}

func TestNewStoreErrors(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, ErrBadFixture) {
		t.Errorf("NewStore() on missing dir = %v, want ErrBadFixture", err)
	}

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	if _, err := NewStore(f); !errors.Is(err, ErrBadFixture) {
		t.Errorf("NewStore() on plain file = %v, want ErrBadFixture", err)
	}
}
