package motion

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrMotionFault is matched by every fault raised while stepping a motion. Faults are sticky: the
// executor refuses to step or start motions until ClearFault is called.
var ErrMotionFault = errors.New("motion fault")

// FaultError records the operation that faulted and why.
type FaultError struct {
	OpID uuid.UUID
	Err  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s in operation %s: %v", ErrMotionFault, e.OpID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *FaultError) Unwrap() error {
	return e.Err
}

// Is matches ErrMotionFault.
func (e *FaultError) Is(target error) bool {
	return target == ErrMotionFault
}

func errInvalidSpeed(speed float64) error {
	return errors.Errorf("speed %v out of range", speed)
}
