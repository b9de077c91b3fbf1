package runner

import (
	"fmt"
	"strings"
)

// Protocol selects how a Runner acquires its mutex.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	// ProtocolBlocking holds the mutex for the duration of a closure (Mutex.Do).
	ProtocolBlocking
	// ProtocolScoped releases through a scope token (Mutex.Scope).
	ProtocolScoped
	// ProtocolEnter pairs Lock with a deferred Unlock.
	ProtocolEnter
	// ProtocolTryEnter gives up when the mutex is busy (Mutex.TryLock).
	ProtocolTryEnter
)

var protocolNames = map[Protocol]string{
	ProtocolBlocking: "blocking",
	ProtocolScoped:   "scoped",
	ProtocolEnter:    "enter",
	ProtocolTryEnter: "tryenter",
}

func Protocols() []Protocol {
	return []Protocol{ProtocolBlocking, ProtocolScoped, ProtocolEnter, ProtocolTryEnter}
}

func (p Protocol) String() string {
	if s, ok := protocolNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Protocol(%d)", int(p))
}

func ParseProtocol(s string) (Protocol, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for p, name := range protocolNames {
		if name == s {
			return p, nil
		}
	}

	return ProtocolUnknown, fmt.Errorf("unknown protocol %q, expected one of %v", s, Protocols())
}
