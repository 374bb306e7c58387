// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// FormatNetworkError converts technical HTTP/network errors into user-friendly
// messages. It detects common error types (timeout, DNS, connection refused)
// and displays troubleshooting hints for each.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}

	switch {
	case isTimeoutError(err):
		showTimeoutError(context)
	case isDNSError(err):
		showDNSError(context)
	case isConnectionRefusedError(err):
		showConnectionRefusedError(context)
	default:
		showGenericError(context, err.Error())
	}

	// Return wrapped error for logging/debugging
	return fmt.Errorf("network error: %w", err)
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// showTimeoutError displays a user-friendly timeout error message.
func showTimeoutError(context string) {
	pterm.Error.Printf("Connection timeout while %s\n", context)
	pterm.Println()
	pterm.Println("The panel took too long to respond. This could mean:")
	pterm.Println("  • Slow network connection")
	pterm.Println("  • Panel is under heavy load")
	pterm.Println()
	pterm.Println("Please try again in a few moments.")
}

// showDNSError displays a user-friendly DNS error message.
func showDNSError(context string) {
	pterm.Error.Printf("Cannot resolve panel address while %s\n", context)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • Your network connection is working")
	pterm.Println("  • The configured FORTRESS_API_URL is correct")
}

// showConnectionRefusedError displays a user-friendly connection refused message.
func showConnectionRefusedError(context string) {
	pterm.Error.Printf("Connection refused while %s\n", context)
	pterm.Println()
	pterm.Println("The panel is not accepting connections. This could mean:")
	pterm.Println("  • The panel service is down")
	pterm.Println("  • Wrong panel address or port")
	pterm.Println()
	pterm.Println("Check the configured base URL and try again.")
}

// showGenericError displays a generic message for unrecognized errors.
func showGenericError(context string, errDetails string) {
	pterm.Error.Printf("Cannot reach the Fortress panel while %s\n", context)
	if errDetails != "" {
		shortErr := errDetails
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", shortErr)
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "panel"
	}
	return u.Host
}
