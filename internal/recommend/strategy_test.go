package recommend

import (
	"testing"

	"github.com/cinelabs/cinescope/internal/domain"
)

func sampleDataset(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: int64(i + 1)}
	}
	return out
}

func TestPickSizeAndExclusion(t *testing.T) {
	sampler := NewSeededSampler(1)
	dataset := sampleDataset(20)

	got := sampler.Pick(dataset, 7, 5)

	if len(got) != 5 {
		t.Fatalf("expected 5 picks, got %d", len(got))
	}

	seen := make(map[int64]bool)
	for _, m := range got {
		if m.ID == 7 {
			t.Error("excluded movie returned")
		}
		if seen[m.ID] {
			t.Errorf("duplicate pick %d", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestPickSmallDataset(t *testing.T) {
	sampler := NewSeededSampler(1)

	got := sampler.Pick(sampleDataset(3), 2, 5)

	if len(got) != 2 {
		t.Errorf("expected all 2 candidates, got %d", len(got))
	}
}

func TestPickDoesNotMutateDataset(t *testing.T) {
	sampler := NewSeededSampler(99)
	dataset := sampleDataset(10)

	sampler.Pick(dataset, 1, 5)

	for i, m := range dataset {
		if m.ID != int64(i+1) {
			t.Fatalf("dataset reordered at %d: %d", i, m.ID)
		}
	}
}

func TestPickEmptyDataset(t *testing.T) {
	sampler := NewSeededSampler(1)

	if got := sampler.Pick(nil, 1, 5); len(got) != 0 {
		t.Errorf("expected no picks from empty dataset, got %d", len(got))
	}
}
