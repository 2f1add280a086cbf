package fluid

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	//ErrInvalidParameter - a Parameters field is outside its valid range
	ErrInvalidParameter = errors.New("fluid: invalid parameter")

	//ErrNonFinite - NaN or Inf found in particle state after a step
	ErrNonFinite = errors.New("fluid: non-finite particle state")
)

//StepError carries the step context of a failed Update
type StepError struct {
	Step  int     //Completed step count when the error was detected
	Time  float64 //Simulated time
	Index int     //First offending particle
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.5fs): particle %d: %v", e.Step, e.Time, e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
