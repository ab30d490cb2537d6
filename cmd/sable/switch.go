package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of an auto|on|off flag (--color, --ui).
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

var switchNames = [...]string{switchAuto: "auto", switchOn: "on", switchOff: "off"}

func (m switchMode) String() string { return switchNames[m] }

// parseSwitch reads the value of --name; empty means auto.
func parseSwitch(name, value string) (switchMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return switchAuto, nil
	}
	for m, s := range switchNames {
		if v == s {
			return switchMode(m), nil
		}
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
}

// enabled resolves auto against f; muted turns auto off.
func (m switchMode) enabled(f *os.File, muted bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return !muted && isTerminal(f)
}
