// Package app defines common runtime contracts shared by the executable
// entrypoints under cmd/.
//
// It lets cmd/* binaries start the operator CLI without depending on its
// concrete implementation.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
