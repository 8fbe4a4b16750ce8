package removeclass

import "errors"

var (
	errMissingClass = errors.New("remove-cpp-class: class name is required")
	errClassName    = errors.New("remove-cpp-class: invalid class name")
)
