// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"io"

	"github.com/pion/logging"
)

// NewLoggerFactory returns the factory every command logger comes from.
// Verbose output adds the debug level.
func NewLoggerFactory(w io.Writer, verbose bool) *logging.DefaultLoggerFactory {
	level := logging.LogLevelInfo
	if verbose {
		level = logging.LogLevelDebug
	}

	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: level,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
}

// DiscardLogger drops everything.
func DiscardLogger() logging.LeveledLogger {
	return logging.NewDefaultLeveledLoggerForScope("discard", logging.LogLevelDisabled, io.Discard)
}
