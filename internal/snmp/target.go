// Package snmp
package snmp

import (
	"regexp"
	"strconv"
	"strings"
)

var targetPattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

// ValidTarget reports whether s is a usable device address: four
// dot-separated groups of 1-3 digits, each in [0,255]. Checked before any
// protocol call is attempted.
func ValidTarget(s string) bool {
	if !targetPattern.MatchString(s) {
		return false
	}

	for _, group := range strings.Split(s, ".") {
		n, err := strconv.Atoi(group)
		if err != nil || n > 255 {
			return false
		}
	}

	return true
}
