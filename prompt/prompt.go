/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

var placeholderRE = regexp.MustCompile(`\{\{([a-z][a-z0-9_]*)\}\}`)

// Template is an LLM prompt with named {{placeholder}} slots.
// Binding returns a new Template, so parsed templates can be shared
// across goroutines and bound per-request.
type Template struct {
	text  string
	slots map[string]string // placeholder -> bound value; "" sentinel means unbound
	bound map[string]bool
}

// New parses a template and records its placeholders.
func New(text string) (*Template, error) {
	slots := make(map[string]string)
	bound := make(map[string]bool)
	for _, m := range placeholderRE.FindAllStringSubmatch(text, -1) {
		slots[m[1]] = ""
		bound[m[1]] = false
	}
	if strings.Contains(placeholderRE.ReplaceAllString(text, ""), "{{") {
		return nil, fmt.Errorf("template contains malformed placeholder")
	}
	return &Template{text: text, slots: slots, bound: bound}, nil
}

// MustNew is New for package-level template literals.
func MustNew(text string) *Template {
	t, err := New(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders returns the set of placeholder names in the template.
func (t *Template) Placeholders() map[string]struct{} {
	out := make(map[string]struct{}, len(t.slots))
	for name := range t.slots {
		out[name] = struct{}{}
	}
	return out
}

func (t *Template) bind(name, value string) (*Template, error) {
	if _, ok := t.slots[name]; !ok {
		return nil, fmt.Errorf("template has no placeholder %q", name)
	}
	if t.bound[name] {
		return nil, fmt.Errorf("placeholder %q is already bound", name)
	}
	nt := &Template{
		text:  t.text,
		slots: make(map[string]string, len(t.slots)),
		bound: make(map[string]bool, len(t.bound)),
	}
	for k, v := range t.slots {
		nt.slots[k] = v
		nt.bound[k] = t.bound[k]
	}
	nt.slots[name] = value
	nt.bound[name] = true
	return nt, nil
}

// BindSection binds untrusted text into the slot, wrapped in an XML
// element named after the slot so the model can tell data from
// instructions. The content is XML-escaped.
func (t *Template) BindSection(name, content string) (*Template, error) {
	var sb strings.Builder
	sb.WriteString("<" + name + ">\n")
	if err := xml.EscapeText(&sb, []byte(content)); err != nil {
		return nil, fmt.Errorf("escaping %q section: %w", name, err)
	}
	sb.WriteString("\n</" + name + ">")
	return t.bind(name, sb.String())
}

// BindRaw binds developer-controlled text verbatim.
func (t *Template) BindRaw(name, value string) (*Template, error) {
	return t.bind(name, value)
}

// Build renders the template, failing if any placeholder is unbound.
func (t *Template) Build() (string, error) {
	for name, ok := range t.bound {
		if !ok {
			return "", fmt.Errorf("placeholder %q is unbound", name)
		}
	}
	out := placeholderRE.ReplaceAllStringFunc(t.text, func(m string) string {
		name := placeholderRE.FindStringSubmatch(m)[1]
		return t.slots[name]
	})
	return out, nil
}
