//go:build !windows

package transport

import "net"

// dial opens one sub-channel. On POSIX platforms channel names are
// filesystem paths to unix domain sockets created by the engine.
func dial(name string) (net.Conn, error) {
	return net.Dial("unix", name)
}
