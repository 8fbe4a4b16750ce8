// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package cmakelists

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse splits text into command invocations and the verbatim text around
// them. Arguments are tokenized but never validated.
func Parse(text string) (*Descriptor, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrParse)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrParse)
	}

	p := &parser{text: text}
	if err := p.run(); err != nil {
		return nil, err
	}

	return &Descriptor{segments: p.segments}, nil
}

// ParseDirective parses text holding exactly one invocation, optionally
// surrounded by blanks.
func ParseDirective(text string) (*Directive, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty invocation", ErrInvalidDirective)
	}

	p := &parser{text: trimmed}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirective, err)
	}
	if len(p.segments) != 1 || p.segments[0].dir == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirective, trimmed)
	}

	return p.segments[0].dir, nil
}

type parser struct {
	text     string
	pos      int
	verbatim strings.Builder
	segments []segment
}

func (p *parser) run() error {
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case c == '#':
			end, err := p.skipComment(p.pos)
			if err != nil {
				return err
			}
			p.verbatim.WriteString(p.text[p.pos:end])
			p.pos = end
		case isIdentStart(c) && (p.pos == 0 || !isIdentChar(p.text[p.pos-1])):
			if err := p.command(); err != nil {
				return err
			}
		default:
			p.verbatim.WriteByte(c)
			p.pos++
		}
	}
	p.flush()

	return nil
}

func (p *parser) flush() {
	if p.verbatim.Len() == 0 {
		return
	}
	p.segments = append(p.segments, segment{text: p.verbatim.String()})
	p.verbatim.Reset()
}

// command consumes an identifier and, when it is followed by an argument
// list, records a directive. A bare identifier stays verbatim.
func (p *parser) command() error {
	start := p.pos
	end := start
	for end < len(p.text) && isIdentChar(p.text[end]) {
		end++
	}
	open := end
	for open < len(p.text) && (p.text[open] == ' ' || p.text[open] == '\t') {
		open++
	}
	if open >= len(p.text) || p.text[open] != '(' {
		p.verbatim.WriteString(p.text[start:end])
		p.pos = end

		return nil
	}

	closing, args, spans, err := p.arguments(open)
	if err != nil {
		return fmt.Errorf("%s at line %d: %w", p.text[start:end], lineOf(p.text, start), err)
	}

	p.flush()
	for i := range spans {
		spans[i].start -= start
		spans[i].end -= start
	}
	p.segments = append(p.segments, segment{dir: &Directive{
		Name:  p.text[start:end],
		Raw:   p.text[start : closing+1],
		Args:  args,
		spans: spans,
	}})
	p.pos = closing + 1

	return nil
}

// arguments scans from the opening parenthesis at open and returns the
// offset of the matching closing parenthesis.
func (p *parser) arguments(open int) (int, []string, []span, error) {
	var (
		args  []string
		spans []span
		depth = 1
		i     = open + 1
	)
	emit := func(s, e int) {
		args = append(args, p.text[s:e])
		spans = append(spans, span{start: s, end: e})
	}

	for i < len(p.text) {
		c := p.text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '#':
			end, err := p.skipComment(i)
			if err != nil {
				return 0, nil, nil, err
			}
			i = end
		case c == '(':
			emit(i, i+1)
			depth++
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return i, args, spans, nil
			}
			emit(i, i+1)
			i++
		case c == '"':
			end, err := quotedEnd(p.text, i)
			if err != nil {
				return 0, nil, nil, err
			}
			emit(i, end)
			i = end
		case c == '[' && bracketLevel(p.text, i) >= 0:
			end, err := bracketEnd(p.text, i)
			if err != nil {
				return 0, nil, nil, err
			}
			emit(i, end)
			i = end
		default:
			s := i
			for i < len(p.text) && !isArgBreak(p.text[i]) {
				if p.text[i] == '\\' && i+1 < len(p.text) {
					i++
				}
				i++
			}
			emit(s, i)
		}
	}

	return 0, nil, nil, fmt.Errorf("%w: unbalanced parentheses", ErrParse)
}

// skipComment returns the end offset of the comment starting at i. Line
// comments stop before the newline.
func (p *parser) skipComment(i int) (int, error) {
	if i+1 < len(p.text) && p.text[i+1] == '[' && bracketLevel(p.text, i+1) >= 0 {
		return bracketEnd(p.text, i+1)
	}
	end := strings.IndexByte(p.text[i:], '\n')
	if end < 0 {
		return len(p.text), nil
	}

	return i + end, nil
}

func quotedEnd(text string, i int) (int, error) {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		}
	}

	return 0, fmt.Errorf("%w: unterminated quoted argument at line %d", ErrParse, lineOf(text, i))
}

// bracketLevel reports the number of '=' in a bracket opener "[==[" at i,
// or -1 when there is no opener.
func bracketLevel(text string, i int) int {
	j := i + 1
	for j < len(text) && text[j] == '=' {
		j++
	}
	if j < len(text) && text[j] == '[' {
		return j - i - 1
	}

	return -1
}

func bracketEnd(text string, i int) (int, error) {
	level := bracketLevel(text, i)
	closer := "]" + strings.Repeat("=", level) + "]"
	body := i + level + 2
	idx := strings.Index(text[body:], closer)
	if idx < 0 {
		return 0, fmt.Errorf("%w: unterminated bracket at line %d", ErrParse, lineOf(text, i))
	}

	return body + idx + len(closer), nil
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isArgBreak(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '#':
		return true
	}

	return false
}
