//go:build !windows

package engineproc

import (
	"os"
	"syscall"
)

// interrupt asks the engine to break out of the currently running evaluation.
func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}

// terminate asks the engine to shut down.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
