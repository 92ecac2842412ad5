package sim

import "errors"

var (
	ErrNonPositiveRadius = errors.New("sim: radius must be a positive finite number")
	ErrZeroStepDivision  = errors.New("sim: step division must be non-zero")
	ErrInvalidConfig     = errors.New("sim: invalid config")
	ErrDuplicateBody     = errors.New("sim: body added twice")
)
