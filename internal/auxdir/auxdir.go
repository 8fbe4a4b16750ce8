// Package auxdir embeds the default auxiliary templates used when no
// directory on the aux search path provides one.
package auxdir

import (
	"embed"
	"io/fs"
)

//go:embed templates
var content embed.FS

// FS returns the built-in templates rooted at the template directory.
func FS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}
