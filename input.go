package glboot

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key the session can query.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyQ
	KeyR
	KeyF1
	KeyF5
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyEscape: "escape",
	KeyEnter:  "enter",
	KeySpace:  "space",
	KeyQ:      "q",
	KeyR:      "r",
	KeyF1:     "f1",
	KeyF5:     "f5",
	KeyF10:    "f10",
	KeyF11:    "f11",
	KeyF12:    "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey returns the key with the given config name (case-insensitive).
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "esc" {
		return KeyEscape, nil
	}
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// Action is the state of a key as reported by the window system.
type Action int

const (
	Release Action = iota
	Press
)
