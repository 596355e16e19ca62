package extract

import "errors"

// ErrInvalidScore is returned when the evaluator reply cannot be read as a number.
// Unlike the other decode paths it is not absorbed into a default.
var ErrInvalidScore = errors.New("invalid evaluation score")
