//go:build windows

package engineproc

import (
	"errors"
	"os"
)

// interrupt is unsupported on Windows. Callers fall back to requesting the
// interrupt over the command channel.
func interrupt(p *os.Process) error {
	return errors.New("signal interrupt not supported on windows")
}

// terminate kills the engine outright. Windows has no graceful signal.
func terminate(p *os.Process) error {
	return p.Kill()
}
