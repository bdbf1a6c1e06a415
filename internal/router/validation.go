package router

import (
	"fmt"
	"strings"
)

// ValidateSSID validates a Wi-Fi SSID.
// SSIDs must be non-empty and <= 32 bytes (802.11 limit).
func ValidateSSID(ssid string) error {
	if ssid == "" {
		return NewValidationError("SSID cannot be empty")
	}
	if len(ssid) > 32 {
		return NewValidationError(fmt.Sprintf("SSID too long (max 32 bytes): %d bytes", len(ssid)))
	}
	return nil
}

// ValidateKey validates a pre-shared key.
// An empty key is accepted for open networks. Otherwise WPA passphrases are
// 8-63 printable characters, or exactly 64 hex digits for a raw key.
func ValidateKey(key string) error {
	if key == "" {
		return nil
	}

	if len(key) == 64 {
		if strings.Trim(key, "0123456789abcdefABCDEF") != "" {
			return NewValidationError("64-character key must be hexadecimal")
		}
		return nil
	}

	if len(key) < 8 {
		return NewValidationError(fmt.Sprintf("key too short (min 8 chars): %d chars", len(key)))
	}
	if len(key) > 63 {
		return NewValidationError(fmt.Sprintf("key too long (max 63 chars): %d chars", len(key)))
	}
	for _, r := range key {
		if r < 0x20 || r > 0x7E {
			return NewValidationError("key must contain only printable ASCII characters")
		}
	}
	return nil
}

// ValidateAssociationTarget validates an SSID/key pair supplied by the operator.
// Returns a slice of validation errors (empty if valid).
func ValidateAssociationTarget(ssid, key string) []error {
	var errs []error

	if err := ValidateSSID(ssid); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateKey(key); err != nil {
		errs = append(errs, err)
	}

	return errs
}
