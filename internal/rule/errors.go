package rule

import "errors"

// ErrUnrecognized is returned when rule text matches none of the forms
// allowed for the node kind.
var ErrUnrecognized = errors.New("unrecognized rule")
