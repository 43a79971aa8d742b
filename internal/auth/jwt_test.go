// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k8s7Vq2nX4pL9wZ3rT6yB1mD5fH0jG2c"

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	_, err := NewJWTManager("", time.Hour)
	assert.ErrorContains(t, err, "JWT_SECRET is required")

	_, err = NewJWTManager("short", time.Hour)
	assert.ErrorContains(t, err, "at least 32 characters")

	m, err := NewJWTManager(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, m.timeout)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateToken("planner", "reader")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "planner", claims.Subject)
	assert.Equal(t, "reader", claims.Role)
}

func TestJWTManager_Expired(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testSecret, time.Minute)
	require.NoError(t, err)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken("planner", "")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrExpiredToken), "error = %v", err)
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewJWTManager("Zq1wX2ec3RV4tb5YN6um7IK8ol9Pa0sD", time.Hour)
	require.NoError(t, err)

	foreign, err := other.GenerateToken("planner", "")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "planner"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "error = %v", err)
		})
	}
}
