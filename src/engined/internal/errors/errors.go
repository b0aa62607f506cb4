package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// ErrAlreadyConnected reports that the transport is already fully
	// connected to the requested pair of channel names.
	ErrAlreadyConnected = New("transport already connected")
	// ErrConnectInProgress reports that another connect is currently running.
	ErrConnectInProgress = New("transport connect already in progress")
	// ErrNotConnected reports that an operation requires a connected transport.
	ErrNotConnected = New("transport not connected")
	// ErrNoInboundStream reports that the inbound stream slot is empty.
	ErrNoInboundStream = New("no inbound stream")
	// NoUUIDOnWireError reports that the request is missing a UUID.
	NoUUIDOnWireError = New("UUID is required")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, NoUUIDOnWireError)
}
