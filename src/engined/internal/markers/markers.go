// Package markers recognizes the literal synchronization tokens the engine
// process embeds in its stderr/stdout streams. All marker literals live here;
// no other package matches raw substrings.
package markers

import "strings"

// Kind identifies a synchronization marker emitted by the engine.
type Kind int

const (
	// KindNone indicates that no marker was present.
	KindNone Kind = iota
	// KindOutboundReady signals that the engine is listening on the command channel.
	KindOutboundReady
	// KindInboundReady signals that the engine is listening on the event channel.
	KindInboundReady
	// KindBothReady signals that both channels are listening.
	KindBothReady
	// KindLoopReady signals that the engine's message loop is running.
	KindLoopReady
	// KindEnvActivated signals that project environment activation finished.
	KindEnvActivated
)

const (
	_tokenOutboundReady = "##engine/out-ready"
	_tokenInboundReady  = "##engine/in-ready"
	_tokenBothReady     = "##engine/ready"
	_tokenLoopReady     = "##engine/loop-ready"
	_tokenEnvActivated  = "##engine/env-activated"
	_tokenClose         = "##"
	_payloadSep         = ":"
)

// Keep more specific tokens ahead of "##engine/ready" so a shared prefix can
// never shadow them.
var _tokens = []struct {
	kind  Kind
	token string
}{
	{KindOutboundReady, _tokenOutboundReady},
	{KindInboundReady, _tokenInboundReady},
	{KindLoopReady, _tokenLoopReady},
	{KindEnvActivated, _tokenEnvActivated},
	{KindBothReady, _tokenBothReady},
}

// Marker is a recognized synchronization token. Payload carries the optional
// channel name supplied by the engine ("##engine/out-ready:/tmp/x.sock##").
type Marker struct {
	Kind    Kind
	Payload string
}

// String returns a short name for the marker kind, for logs.
func (k Kind) String() string {
	switch k {
	case KindOutboundReady:
		return "outbound-ready"
	case KindInboundReady:
		return "inbound-ready"
	case KindBothReady:
		return "both-ready"
	case KindLoopReady:
		return "loop-ready"
	case KindEnvActivated:
		return "env-activated"
	}
	return "none"
}

// Recognize scans a single output line for a synchronization marker.
// It returns the marker, the line with the marker token removed, and whether
// a marker was found. Lines carry at most one marker; if the engine ever
// emits more, only the first is honored and the rest are stripped.
func Recognize(line string) (Marker, string, bool) {
	first := Marker{Kind: KindNone}
	found := false
	for {
		m, stripped, ok := recognizeOne(line)
		if !ok {
			break
		}
		line = stripped
		if !found {
			first = m
			found = true
		}
	}
	return first, line, found
}

func recognizeOne(line string) (Marker, string, bool) {
	for _, entry := range _tokens {
		start := strings.Index(line, entry.token)
		if start < 0 {
			continue
		}

		rest := line[start+len(entry.token):]
		payload := ""
		if strings.HasPrefix(rest, _payloadSep) {
			end := strings.Index(rest, _tokenClose)
			if end < 0 {
				// Unterminated token, treat the remainder of the line as payload.
				payload = rest[len(_payloadSep):]
				rest = ""
			} else {
				payload = rest[len(_payloadSep):end]
				rest = rest[end+len(_tokenClose):]
			}
		} else if strings.HasPrefix(rest, _tokenClose) {
			rest = rest[len(_tokenClose):]
		} else {
			// Prefix of a longer token we don't know, leave the line alone.
			continue
		}

		return Marker{Kind: entry.kind, Payload: payload}, line[:start] + rest, true
	}

	return Marker{Kind: KindNone}, line, false
}
