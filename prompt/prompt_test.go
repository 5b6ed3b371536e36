/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	tmpl := MustNew(`Evaluate the following.

{{readme}}

{{criterion}}

Respond with JSON only.`)

	tmpl, err := tmpl.BindSection("readme", "# Hello <world>")
	if err != nil {
		t.Fatalf("BindSection() = %v", err)
	}
	tmpl, err = tmpl.BindSection("criterion", "clarity")
	if err != nil {
		t.Fatalf("BindSection() = %v", err)
	}

	out, err := tmpl.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if !strings.Contains(out, "<readme>") || !strings.Contains(out, "</readme>") {
		t.Errorf("output missing readme section wrapper:\n%s", out)
	}
	if !strings.Contains(out, "&lt;world&gt;") {
		t.Errorf("content was not XML-escaped:\n%s", out)
	}
	if strings.Contains(out, "{{") {
		t.Errorf("output still contains placeholders:\n%s", out)
	}
}

func TestBuildUnbound(t *testing.T) {
	tmpl := MustNew("{{a}} and {{b}}")
	tmpl, err := tmpl.BindRaw("a", "one")
	if err != nil {
		t.Fatalf("BindRaw() = %v", err)
	}
	if _, err := tmpl.Build(); err == nil {
		t.Error("Build() with unbound placeholder should fail")
	}
}

func TestBindErrors(t *testing.T) {
	tmpl := MustNew("{{a}}")

	if _, err := tmpl.BindRaw("missing", "x"); err == nil {
		t.Error("binding unknown placeholder should fail")
	}

	bound, err := tmpl.BindRaw("a", "x")
	if err != nil {
		t.Fatalf("BindRaw() = %v", err)
	}
	if _, err := bound.BindRaw("a", "y"); err == nil {
		t.Error("double bind should fail")
	}
}

func TestBindIsImmutable(t *testing.T) {
	base := MustNew("{{a}}")
	if _, err := base.BindRaw("a", "first"); err != nil {
		t.Fatalf("BindRaw() = %v", err)
	}
	// The base template must remain unbound after a child binding.
	if _, err := base.BindRaw("a", "second"); err != nil {
		t.Errorf("base template was mutated by a child bind: %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	tmpl := MustNew("{{one}} {{two}} {{one}}")
	got := tmpl.Placeholders()
	if len(got) != 2 {
		t.Errorf("Placeholders() = %v, want exactly {one, two}", got)
	}
	for _, want := range []string{"one", "two"} {
		if _, ok := got[want]; !ok {
			t.Errorf("Placeholders() missing %q", want)
		}
	}
}
