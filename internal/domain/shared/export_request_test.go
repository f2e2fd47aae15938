package shared

import (
	"testing"

	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
)

func TestExportRequest_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		periods  []transaction.Period
		expected error
	}{
		{"valid", []transaction.Period{{Year: 2025, Month: 1}, {Year: 2025, Month: 12}}, nil},
		{"empty", nil, ErrNoPeriods},
		{"bad month", []transaction.Period{{Year: 2025, Month: 1}, {Year: 2025, Month: 13}}, transaction.ErrInvalidPeriod},
		{"too many", make([]transaction.Period, MaxExportPeriods+1), ErrTooManyPeriods},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := &ExportRequest{Periods: tc.periods}
			err := req.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
