// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

var (
	ErrMissingBinding       = errors.New("template: missing binding")
	ErrMalformedPlaceholder = errors.New("template: malformed placeholder")
)

// MissingBindingError names the placeholder that had no binding.
type MissingBindingError struct {
	Key string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("%v: %%(%s)s", ErrMissingBinding, e.Key)
}

func (e *MissingBindingError) Is(target error) bool {
	return target == ErrMissingBinding
}

var placeholderKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Render substitutes %(KEY)s placeholders. "%%" yields a literal '%'. Every
// placeholder must have a binding.
func Render(text string, bindings map[string]string) (string, error) {
	source, keys, err := translate(text)
	if err != nil {
		return "", err
	}
	for _, key := range keys {
		if _, ok := bindings[key]; !ok {
			return "", &MissingBindingError{Key: key}
		}
	}

	tmpl, err := template.New("aux").Option("missingkey=error").Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPlaceholder, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, bindings); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingBinding, err)
	}

	return out.String(), nil
}

// translate rewrites the %-style template into text/template syntax and
// returns the referenced keys in order of appearance.
func translate(text string) (string, []string, error) {
	var (
		b    strings.Builder
		keys []string
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{':
			b.WriteString(`{{"{"}}`)
		case c != '%' || i+1 >= len(text):
			b.WriteByte(c)
		case text[i+1] == '%':
			b.WriteByte('%')
			i++
		case text[i+1] == '(':
			end := strings.Index(text[i:], ")s")
			if end < 0 {
				return "", nil, fmt.Errorf("%w: unterminated %q at line %d",
					ErrMalformedPlaceholder, firstLine(text[i:]), strings.Count(text[:i], "\n")+1)
			}
			key := text[i+2 : i+end]
			if !placeholderKey.MatchString(key) {
				return "", nil, fmt.Errorf("%w: bad key %q", ErrMalformedPlaceholder, key)
			}
			keys = append(keys, key)
			b.WriteString("{{.")
			b.WriteString(key)
			b.WriteString("}}")
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), keys, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}

	return s
}
