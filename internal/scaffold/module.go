// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pion/scaffold/internal/cmakelists"
)

// Module is an Elements module directory and its parsed descriptor.
type Module struct {
	Dir        string
	Name       string
	CMakeLists string
	Descriptor *cmakelists.Descriptor
}

// LoadModule reads dir/CMakeLists.txt and takes the module name from its
// elements_subdir directive.
func LoadModule(dir string) (*Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("module dir: %w", err)
	}
	path := filepath.Join(abs, CMakeListsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no <%s> file in <%s>", ErrNotFound, CMakeListsFile, abs)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	desc, err := cmakelists.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sub := desc.Find("elements_subdir")
	if sub == nil || len(sub.Args) == 0 {
		return nil, fmt.Errorf("%w: no module name found in <%s>", ErrNotFound, path)
	}

	return &Module{
		Dir:        abs,
		Name:       sub.Args[0],
		CMakeLists: path,
		Descriptor: desc,
	}, nil
}
