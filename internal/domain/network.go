package domain

import (
	"fmt"
	"strings"
)

// ValidateNetworkName checks that a network name can scope a ledger file
func ValidateNetworkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
	}
	return nil
}
