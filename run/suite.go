/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package run

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Suite is an optional YAML description of a run: which cases to
// evaluate and the knobs to run them with. Zero values defer to the
// runner's defaults.
type Suite struct {
	Cases       []string `yaml:"cases"`
	MaxSteps    int      `yaml:"max_steps"`
	Concurrency int      `yaml:"concurrency"`
	CaseTimeout string   `yaml:"case_timeout"`
}

// LoadSuite reads and validates a suite file.
func LoadSuite(path string) (*Suite, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite %s: %w", path, err)
	}
	var s Suite
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}
	if _, err := s.Options(); err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	return &s, nil
}

// Options converts the suite's knobs into runner options.
func (s *Suite) Options() ([]Option, error) {
	var opts []Option
	if s.MaxSteps < 0 || s.Concurrency < 0 {
		return nil, fmt.Errorf("max_steps and concurrency must not be negative")
	}
	if s.MaxSteps > 0 {
		opts = append(opts, WithMaxSteps(s.MaxSteps))
	}
	if s.Concurrency > 0 {
		opts = append(opts, WithConcurrency(s.Concurrency))
	}
	if s.CaseTimeout != "" {
		d, err := time.ParseDuration(s.CaseTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid case_timeout: %w", err)
		}
		opts = append(opts, WithCaseTimeout(d))
	}
	return opts, nil
}
