// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication outcome worth auditing.
type SecurityEvent struct {
	Event     string
	Subject   string
	Token     string
	IPAddress string
	Path      string
	Success   bool
	Error     string
}

// SecurityLogger writes authentication events with secrets masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger on logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent writes event. Failures are logged at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	status := "success"
	if !event.Success {
		e = l.logger.Warn()
		status = "failed"
	}
	e = e.Str("event", event.Event).Str("status", status)

	if event.Subject != "" {
		e = e.Str("subject", event.Subject)
	}
	if event.Token != "" {
		e = e.Str("token", SanitizeToken(event.Token))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Error != "" && !event.Success {
		e = e.Str("error", SanitizeError(event.Error))
	}

	e.Msg("")
}

// LogTokenRejected records a request whose bearer token failed validation.
func (l *SecurityLogger) LogTokenRejected(token, ip, path, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     "token_rejected",
		Token:     token,
		IPAddress: ip,
		Path:      path,
		Error:     reason,
	})
}

// LogTokenAccepted records a successfully authenticated request at debug level.
func (l *SecurityLogger) LogTokenAccepted(subject, ip, path string) {
	l.logger.Debug().
		Str("event", "token_accepted").
		Str("subject", subject).
		Str("ip", ip).
		Str("path", path).
		Msg("")
}

// SanitizeToken masks a token, keeping the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeError hides messages that may quote credentials and caps the length.
func SanitizeError(err string) string {
	lowerErr := strings.ToLower(err)
	for _, pattern := range []string{"secret", "bearer", "authorization", "cookie", "password"} {
		if strings.Contains(lowerErr, pattern) {
			return "authentication error"
		}
	}
	return truncateString(err, 200)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
