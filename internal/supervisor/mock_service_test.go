// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService is a suture.Service whose failures are scripted.
type mockService struct {
	name       string
	startCount atomic.Int32
	failCount  atomic.Int32
	maxFails   int32
	started    chan struct{}
}

func newMockService(name string, maxFails int32) *mockService {
	return &mockService{name: name, maxFails: maxFails, started: make(chan struct{}, 16)}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}

	if m.failCount.Add(1) <= m.maxFails {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string {
	return m.name
}
