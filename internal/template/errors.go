package template

import "errors"

var (
	// ErrTaskNotOptional is returned when an exclusion set names a task
	// with Optional == false.
	ErrTaskNotOptional = errors.New("excluded task is not optional")
	// ErrUnknownTask is returned when an exclusion set names a task id
	// that does not exist in the template tree.
	ErrUnknownTask = errors.New("unknown task")
)
