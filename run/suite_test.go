/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, `
cases:
  - word_counter
  - slugify_text
max_steps: 10
concurrency: 1
case_timeout: 2m
`)

	s, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"word_counter", "slugify_text"}, s.Cases)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoadSuiteDefaults(t *testing.T) {
	s, err := LoadSuite(writeSuite(t, `cases: [word_counter]`))
	require.NoError(t, err)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestLoadSuiteInvalid(t *testing.T) {
	_, err := LoadSuite(writeSuite(t, `case_timeout: "soon"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case_timeout")

	_, err = LoadSuite(writeSuite(t, `max_steps: -3`))
	require.Error(t, err)

	_, err = LoadSuite(writeSuite(t, "cases: ["))
	require.Error(t, err)

	_, err = LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
