// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	table *Table
	err   error
}

func (m *mockDataProvider) Snapshot(ctx context.Context) (*Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

// mockModel implements Model with fixed outputs.
type mockModel struct {
	next      string
	sampleErr error
	places    *orderedmap.OrderedMap[int, string]
	selectIn  *SelectInput
}

func (m *mockModel) Name() string { return "mock" }

func (m *mockModel) Affinity(userID int, table *Table, opts AffinityOptions) ProbabilityTable {
	return ProbabilityTable{{Category: opts.Vocabulary[0], Count: 1, AverageRating: 1, Probability: 1}}
}

func (m *mockModel) Transitions(probs ProbabilityTable) TransitionMatrix {
	return TransitionMatrix{{Source: probs[0].Category, Destination: probs[0].Category, Probability: 1}}
}

func (m *mockModel) NextCategory(source string, matrix TransitionMatrix, rng RandomSource) (string, error) {
	if m.sampleErr != nil {
		return "", m.sampleErr
	}
	return m.next, nil
}

func (m *mockModel) Rank(city string, table *Table, cohortOrder []string) RankingTable {
	return nil
}

func (m *mockModel) History(userID int, table *Table) History {
	return History{}
}

//nolint:gocritic // hugeParam: in passed by value for immutability
func (m *mockModel) Select(in SelectInput) Selection {
	m.selectIn = &in
	return Selection{Places: m.places, ColdStart: !in.Table.HasUser(in.UserID)}
}

func testTable() *Table {
	return NewTable([]Interaction{
		{UserID: 1, AgeRange: "18-25", PlaceID: 10, PlaceName: "Monas", Category: "Culture", City: "Jakarta", PlaceRatings: 4, Rating: 4.5},
	})
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		engine, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if engine.GetConfig().Selection.TopK != 5 {
			t.Errorf("TopK = %d, want 5", engine.GetConfig().Selection.TopK)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Selection.TopK = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("NewEngine() = nil error, want error")
		}
	})
}

func TestEngine_RecommendErrors(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("disk on fire")

	tests := []struct {
		name     string
		model    Model
		provider DataProvider
		wantErr  error
	}{
		{
			name:     "no model",
			provider: &mockDataProvider{table: testTable()},
			wantErr:  ErrNoModel,
		},
		{
			name:    "no provider",
			model:   &mockModel{next: "Culture"},
			wantErr: ErrNoData,
		},
		{
			name:     "provider without table",
			model:    &mockModel{next: "Culture"},
			provider: &mockDataProvider{},
			wantErr:  ErrNoData,
		},
		{
			name:     "provider error is wrapped",
			model:    &mockModel{next: "Culture"},
			provider: &mockDataProvider{err: providerErr},
			wantErr:  providerErr,
		},
		{
			name:     "sampling error is wrapped",
			model:    &mockModel{sampleErr: ErrInvalidCategory},
			provider: &mockDataProvider{table: testTable()},
			wantErr:  ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(nil, zerolog.Nop())
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if tt.model != nil {
				engine.RegisterModel(tt.model)
			}
			if tt.provider != nil {
				engine.SetDataProvider(tt.provider)
			}

			_, err = engine.Recommend(context.Background(), Request{UserID: 1, Category: "Culture", City: "Jakarta"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.wantErr)
			}
			if engine.GetMetrics().ErrorCount != 1 {
				t.Errorf("ErrorCount = %d, want 1", engine.GetMetrics().ErrorCount)
			}
		})
	}
}

func TestEngine_RecommendCancelled(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.RegisterModel(&mockModel{next: "Culture"})
	engine.SetDataProvider(&mockDataProvider{table: testTable()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Recommend(ctx, Request{UserID: 1, Category: "Culture", City: "Jakarta"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestEngine_RecommendPassesConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Categories = []string{"Nautical", "Culture"}
	cfg.Selection.TopK = 3
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	model := &mockModel{next: "Nautical"}
	engine.RegisterModel(model)
	engine.SetDataProvider(&mockDataProvider{table: testTable()})

	res, err := engine.Recommend(context.Background(), Request{RequestID: "req-1", UserID: 99, Category: "Nautical", City: "Jakarta"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.Category != "Nautical" {
		t.Errorf("Category = %q, want Nautical", res.Category)
	}
	if res.Places == nil || res.Places.Len() != 0 {
		t.Errorf("Places = %v, want empty non-nil map", res.Places)
	}
	if res.Metadata.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", res.Metadata.RequestID)
	}
	if !res.Metadata.ColdStart {
		t.Error("ColdStart = false, want true")
	}
	if model.selectIn == nil || model.selectIn.Options.TopK != 3 || model.selectIn.Category != "Nautical" {
		t.Errorf("Select input = %+v, want TopK 3 and category Nautical", model.selectIn)
	}

	m := engine.GetMetrics()
	if m.RequestCount != 1 || m.ColdStarts != 1 || m.EmptyResults != 1 {
		t.Errorf("GetMetrics() = %+v", m)
	}
}

func TestEngine_UpdateConfig(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	bad := DefaultConfig()
	bad.Selection.BudgetMultiplier = -1
	if err := engine.UpdateConfig(bad); err == nil {
		t.Error("UpdateConfig() = nil, want error")
	}

	good := DefaultConfig()
	good.Seed = 99
	if err := engine.UpdateConfig(good); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	good.Seed = 1
	if engine.GetConfig().Seed != 99 {
		t.Errorf("Seed = %d, want 99", engine.GetConfig().Seed)
	}
}
