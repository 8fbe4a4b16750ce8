package script

import "errors"

var errMissingName = errors.New("add-script: script name is required")
