// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// validateSourceLocation validates a dataset source. Local paths pass through;
// anything with a scheme must be an http(s) URL with a host and a path.
func validateSourceLocation(location, fieldName string) error {
	if !strings.Contains(location, "://") {
		return nil
	}
	return validateHTTPURL(location, fieldName)
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS downloads.
// Validates: scheme (http/https), host present, no fragment.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path == "" || parsedURL.Path == "/" {
		return fmt.Errorf("%s must point at a CSV file, got base URL", fieldName)
	}

	if parsedURL.Fragment != "" {
		return fmt.Errorf("%s should not contain a fragment, remove: #%s", fieldName, parsedURL.Fragment)
	}

	return nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
