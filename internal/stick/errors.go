package stick

import "errors"

// Input errors. Handlers treat them as no-ops; Position reports them.
var (
	// ErrNoPointer indicates an event with an empty touch list and no mouse position.
	ErrNoPointer = errors.New("stick: event carries no touch point or mouse position")

	// ErrDegenerateSurface indicates a surface rendered with zero width or height.
	ErrDegenerateSurface = errors.New("stick: surface has zero rendered size")

	// ErrNonFinite indicates a pointer coordinate that is NaN or infinite.
	ErrNonFinite = errors.New("stick: pointer coordinates are not finite")
)
