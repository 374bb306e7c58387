// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the shared zerolog setup and utilities for secure logging.
// It includes functions for masking sensitive information in log messages so that
// passwords and session tokens are not accidentally exposed in logs or error
// messages shown to users.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword  = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reToken     = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reJSONToken = regexp.MustCompile(`(?i)("(?:access_token|refresh_token|password)"\s*:\s*")([^"]*)(")`)
)

// Mask replaces sensitive values in the input string with "***".
// It covers bearer headers, key=value pairs and JSON token fields.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONToken.ReplaceAllString(out, "$1***$3")
	// Basic env-like pairs key=VALUE; mask common secret keys
	for _, k := range []string{"FORTRESS_PASSWORD", "ACCESS_TOKEN", "REFRESH_TOKEN"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
