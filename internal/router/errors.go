package router

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeTransport indicates a network-level failure (connection refused, timeout, DNS, ...)
	ErrTypeTransport ErrorType = iota
	// ErrTypeProtocol indicates a malformed or unexpected response
	ErrTypeProtocol
	// ErrTypeAuth indicates the router rejected the login
	ErrTypeAuth
	// ErrTypeNotFound indicates the association target never appeared in a scan
	ErrTypeNotFound
	// ErrTypeValidation indicates invalid input supplied by the operator
	ErrTypeValidation
)

// NetworkErrorSubtype provides more specific transport error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred while talking to the router
type DeviceError struct {
	Type           ErrorType           // Category of error
	Op             string              // Gateway operation that failed (e.g. "scan networks")
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific transport error type
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific DeviceError
func ClassifyNetworkError(err error) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:           ErrTypeTransport,
			Message:        "request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:           ErrTypeTransport,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &DeviceError{
				Type:           ErrTypeTransport,
				Message:        "router refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
			}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &DeviceError{
				Type:           ErrTypeTransport,
				Message:        "host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
			}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &DeviceError{
				Type:           ErrTypeTransport,
				Message:        "network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		return ClassifyNetworkError(urlErr.Err)
	}

	return &DeviceError{
		Type:           ErrTypeTransport,
		Message:        "network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
	}
}

// NewTransportError creates a transport error for op with automatic classification
func NewTransportError(op string, err error) *DeviceError {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		classified = &DeviceError{Type: ErrTypeTransport, Message: "network error occurred"}
	}
	classified.Op = op
	return classified
}

// NewProtocolError creates an error for a malformed or unexpected response
func NewProtocolError(op, message string, err error) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeProtocol,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewStatusError creates a protocol error for an unexpected HTTP status code
func NewStatusError(op string, statusCode int) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeProtocol,
		Op:         op,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(op, message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeAuth,
		Op:         op,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewNotFoundError reports that ssid did not show up within the given number of scans
func NewNotFoundError(ssid string, attempts int) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeNotFound,
		Op:      "associate",
		Message: fmt.Sprintf("network %q not found after %d scan(s)", ssid, attempts),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

func errorType(err error) (ErrorType, bool) {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type, true
	}
	return 0, false
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeTransport
}

// IsProtocolError checks if an error is a protocol error
func IsProtocolError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeProtocol
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeAuth
}

// IsNotFoundError checks if an error reports a missing association target
func IsNotFoundError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeValidation
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) []string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return nil
	}

	switch devErr.Type {
	case ErrTypeTransport:
		switch devErr.NetworkSubtype {
		case NetworkErrorTimeout:
			return []string{
				"The router did not respond in time",
				"Move closer to the router or check its power",
				"Increase router.timeout in the config file",
			}
		case NetworkErrorConnectionRefused:
			return []string{
				"The router's web interface is not accepting connections",
				"Verify the address with --router",
				"Reboot the router if the web interface hung",
			}
		case NetworkErrorDNS:
			return []string{
				"Use the router's IP address instead of a hostname",
			}
		case NetworkErrorHostUnreachable, NetworkErrorNetworkUnreachable:
			return []string{
				"Check that you are connected to the router's network",
				"Verify the address with --router (default: your default gateway)",
			}
		default:
			return []string{
				"Check your network connection",
				"Verify the router is powered on",
			}
		}
	case ErrTypeAuth:
		return []string{
			"The router rejected the login",
			"Pass --user/--password or set them in the config file",
			"The factory credentials are admin/admin",
		}
	case ErrTypeProtocol:
		return []string{
			"The router answered with something unexpected",
			"The firmware may use a different API revision",
			"Run with RO_LOG_LEVEL=debug to see raw responses",
		}
	case ErrTypeNotFound:
		return []string{
			"Check the SSID spelling (matching is case-sensitive)",
			"Move the router closer to the target access point",
			"Raise --max-attempts or --retry-delay",
		}
	}
	return nil
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeTransport:
		switch devErr.NetworkSubtype {
		case NetworkErrorTimeout:
			return "Router not responding (timeout)"
		case NetworkErrorConnectionRefused:
			return "Router refused connection"
		case NetworkErrorDNS:
			return "Cannot resolve router hostname"
		case NetworkErrorHostUnreachable:
			return "Router unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check Wi-Fi connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeAuth:
		return "Login failed - check credentials"
	case ErrTypeProtocol:
		if devErr.StatusCode != 0 {
			return fmt.Sprintf("Router error (HTTP %d)", devErr.StatusCode)
		}
		return "Failed to parse router response"
	default:
		return devErr.Message
	}
}
