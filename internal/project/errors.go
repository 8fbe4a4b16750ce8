package project

import "errors"

var (
	errMissingName        = errors.New("create-project: project name is required")
	errMissingDestination = errors.New("create-project: destination directory is required")
)
