// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package cmakelists models a CMakeLists.txt file as an ordered list of
// command invocations and verbatim text so that single directives can be
// inserted, replaced or trimmed while every other byte is preserved.
package cmakelists

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParse            = errors.New("cmakelists: unreadable build descriptor")
	ErrInvalidDirective = errors.New("cmakelists: invalid directive invocation")
)

// Directive is a single command invocation such as elements_subdir(Foo).
type Directive struct {
	// Name is the command identifier as written in the file.
	Name string
	// Raw is the invocation text from the identifier to the closing parenthesis.
	Raw string
	// Args are the argument tokens. Quoted arguments keep their quotes.
	Args []string

	spans []span
}

type span struct {
	start, end int
}

// Canonical returns the lookup key of the directive. CMake command names
// are case-insensitive.
func (d *Directive) Canonical() string {
	return Canonical(d.Name)
}

// Canonical normalises a command name for lookups.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type segment struct {
	text string
	dir  *Directive
}

func (s segment) String() string {
	if s.dir != nil {
		return s.dir.Raw
	}

	return s.text
}

// Descriptor is the in-memory form of a build descriptor.
type Descriptor struct {
	segments []segment
}

// String serializes the descriptor. An unmodified descriptor reproduces
// the parsed text exactly.
func (d *Descriptor) String() string {
	var b strings.Builder
	for _, seg := range d.segments {
		b.WriteString(seg.String())
	}

	return b.String()
}

// Directives returns the directives in file order.
func (d *Descriptor) Directives() []*Directive {
	var out []*Directive
	for _, seg := range d.segments {
		if seg.dir != nil {
			out = append(out, seg.dir)
		}
	}

	return out
}

// Find returns the first directive with the given name, or nil.
func (d *Descriptor) Find(name string) *Directive {
	key := Canonical(name)
	for _, seg := range d.segments {
		if seg.dir != nil && seg.dir.Canonical() == key {
			return seg.dir
		}
	}

	return nil
}

// FindAll returns every directive with the given name in file order.
func (d *Descriptor) FindAll(name string) []*Directive {
	key := Canonical(name)
	var out []*Directive
	for _, seg := range d.segments {
		if seg.dir != nil && seg.dir.Canonical() == key {
			out = append(out, seg.dir)
		}
	}

	return out
}

// Set replaces the first directive called name with invocation, or appends
// invocation at the end of the file when no such directive exists. Later
// duplicates are left untouched. Calling Set twice with the same arguments
// gives the same text as calling it once.
func (d *Descriptor) Set(name, invocation string) error {
	dir, err := ParseDirective(invocation)
	if err != nil {
		return err
	}
	if dir.Canonical() != Canonical(name) {
		return fmt.Errorf("%w: %q does not invoke %s", ErrInvalidDirective, invocation, name)
	}

	key := Canonical(name)
	for i, seg := range d.segments {
		if seg.dir != nil && seg.dir.Canonical() == key {
			d.segments[i].dir = dir

			return nil
		}
	}

	if text := d.String(); text != "" && !strings.HasSuffix(text, "\n") {
		d.segments = append(d.segments, segment{text: "\n"})
	}
	d.segments = append(d.segments, segment{dir: dir}, segment{text: "\n"})

	return nil
}

// RemoveArgument drops every argument equal to arg from the directives
// called name and returns how many were removed. The rest of each
// invocation keeps its formatting.
func (d *Descriptor) RemoveArgument(name, arg string) int {
	key := Canonical(name)
	removed := 0
	for i, seg := range d.segments {
		if seg.dir == nil || seg.dir.Canonical() != key {
			continue
		}
		raw := seg.dir.Raw
		count := 0
		for k := len(seg.dir.Args) - 1; k >= 0; k-- {
			if seg.dir.Args[k] != arg {
				continue
			}
			raw = cutArgument(raw, seg.dir.spans[k])
			count++
		}
		if count == 0 {
			continue
		}
		updated, err := ParseDirective(raw)
		if err != nil {
			// The cut only removes whole tokens, so this cannot happen for
			// text that parsed before.
			continue
		}
		d.segments[i].dir = updated
		removed += count
	}

	return removed
}

// Delete removes the directives called name for which match returns true.
// A nil match deletes all of them. When a directive sat on a line of its
// own the whole line goes with it.
func (d *Descriptor) Delete(name string, match func(*Directive) bool) int {
	key := Canonical(name)
	deleted := 0
	kept := d.segments[:0:0]
	for i := 0; i < len(d.segments); i++ {
		seg := d.segments[i]
		if seg.dir == nil || seg.dir.Canonical() != key || (match != nil && !match(seg.dir)) {
			kept = append(kept, seg)

			continue
		}
		deleted++

		var prev *segment
		if n := len(kept); n > 0 && kept[n-1].dir == nil {
			prev = &kept[n-1]
		}
		lineStart := len(kept) == 0
		if prev != nil {
			trimmed := strings.TrimRight(prev.text, " \t")
			lineStart = strings.HasSuffix(trimmed, "\n") || (trimmed == "" && len(kept) == 1)
		}
		if !lineStart || i+1 >= len(d.segments) || d.segments[i+1].dir != nil {
			continue
		}
		next := d.segments[i+1].text
		rest := strings.TrimLeft(next, " \t")
		if rest != "" && rest[0] != '\n' {
			continue
		}
		if prev != nil {
			prev.text = strings.TrimRight(prev.text, " \t")
		}
		if rest != "" {
			rest = rest[1:]
		}
		d.segments[i+1].text = rest
	}
	d.segments = kept

	return deleted
}

func cutArgument(raw string, sp span) string {
	start, end := sp.start, sp.end
	lead := start
	for lead > 0 && (raw[lead-1] == ' ' || raw[lead-1] == '\t') {
		lead--
	}
	trail := end
	for trail < len(raw) && (raw[trail] == ' ' || raw[trail] == '\t') {
		trail++
	}

	switch {
	case lead > 0 && raw[lead-1] == '\n' && trail < len(raw) && raw[trail] == '\n':
		// Argument alone on its line.
		return raw[:lead] + raw[trail+1:]
	case lead < start:
		return raw[:lead] + raw[end:]
	default:
		return raw[:start] + raw[trail:]
	}
}
