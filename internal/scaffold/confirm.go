// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pion/logging"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Always answers every prompt with answer.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) (bool, error) {
		return answer, nil
	})
}

// Headless reports whether stdin is not a terminal.
func Headless() bool {
	fd := os.Stdin.Fd()

	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// PromptConfirmer shows an interactive huh confirm field. Without a
// terminal it answers "no" so unattended runs never destroy anything.
type PromptConfirmer struct {
	log logging.LeveledLogger
}

func NewPromptConfirmer(log logging.LeveledLogger) *PromptConfirmer {
	return &PromptConfirmer{log: log}
}

func (p *PromptConfirmer) Confirm(prompt string) (bool, error) {
	if Headless() {
		p.log.Warnf("%s: no terminal, answering no (use --yes to accept)", prompt)

		return false, nil
	}

	answer := false
	field := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)
	if err := field.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}

		return false, err
	}

	return answer, nil
}
