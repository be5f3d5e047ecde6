package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		startDate         time.Time
		cancellationHours int
		want              bool
	}{
		{"well before the window", now.Add(96 * time.Hour), 48, true},
		{"inside the window", now.Add(24 * time.Hour), 48, false},
		{"exactly at the deadline", now.Add(48 * time.Hour), 48, false},
		{"after check-in", now.Add(-24 * time.Hour), 48, false},
		{"zero-hour policy before check-in", now.Add(1 * time.Hour), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundEligible(tt.startDate, tt.cancellationHours, now))
		})
	}
}
