package registry

import (
	"fmt"
	"strings"
)

// Policy decides how a registry treats a registration for an identifier that
// already has an entry.
type Policy string

const (
	PolicyReject    Policy = "reject"
	PolicyOverwrite Policy = "overwrite"
	PolicyAppend    Policy = "append"
)

// ParsePolicy converts user input (config file or CLI flag) into a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyReject, PolicyOverwrite, PolicyAppend:
		return p, nil
	default:
		return "", fmt.Errorf("invalid registration policy %q: must be 'reject', 'overwrite', or 'append'", s)
	}
}

func (p Policy) String() string { return string(p) }
