package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	if _, err := uuid.Parse(s.RunID); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", s.RunID, err)
	}

	s.Update(1, 10, 100*time.Millisecond)
	if s.AveragePopulation != 10 {
		t.Errorf("first average = %v, expected 10", s.AveragePopulation)
	}
	if s.GenerationsPerSecond != 10 {
		t.Errorf("gen/sec = %v, expected 10", s.GenerationsPerSecond)
	}

	s.Update(2, 20, 0)
	if s.AveragePopulation != 11 {
		t.Errorf("moving average = %v, expected 11", s.AveragePopulation)
	}
	if s.GenerationsPerSecond != 10 {
		t.Errorf("zero duration should keep the previous rate, got %v", s.GenerationsPerSecond)
	}
	if s.PeakPopulation != 20 || s.TotalGenerations != 2 {
		t.Errorf("peak = %d, total = %d", s.PeakPopulation, s.TotalGenerations)
	}
}
