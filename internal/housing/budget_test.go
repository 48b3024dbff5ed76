package housing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  BudgetBound
	}{
		{
			name:  "range",
			input: "1000-1500",
			want:  BudgetBound{Min: intPtr(1000), Max: intPtr(1500)},
		},
		{
			name:  "range with unit marker",
			input: "1000萬-1500萬",
			want:  BudgetBound{Min: intPtr(1000), Max: intPtr(1500)},
		},
		{
			name:  "range with spaces",
			input: " 800 - 1200 ",
			want:  BudgetBound{Min: intPtr(800), Max: intPtr(1200)},
		},
		{
			name:  "at or below",
			input: "1000萬以下",
			want:  BudgetBound{Max: intPtr(1000)},
		},
		{
			name:  "at or above",
			input: "3000萬以上",
			want:  BudgetBound{Min: intPtr(3000)},
		},
		{
			name:  "empty",
			input: "",
			want:  BudgetBound{},
		},
		{
			name:  "garbage",
			input: "garbage",
			want:  BudgetBound{},
		},
		{
			name:  "malformed range",
			input: "1000-abc",
			want:  BudgetBound{},
		},
		{
			name:  "range with too many tokens",
			input: "1000-1500-2000",
			want:  BudgetBound{},
		},
		{
			name:  "bare number has no constraint",
			input: "1000",
			want:  BudgetBound{},
		},
		{
			name:  "marker without number",
			input: "以下",
			want:  BudgetBound{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBudget(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBudgetBoundContains(t *testing.T) {
	b := BudgetBound{Min: intPtr(1000), Max: intPtr(1500)}
	assert.True(t, b.Contains(1000))
	assert.True(t, b.Contains(1500))
	assert.True(t, b.Contains(1200))
	assert.False(t, b.Contains(999))
	assert.False(t, b.Contains(1501))

	open := BudgetBound{}
	assert.True(t, open.Contains(0))
	assert.True(t, open.Contains(99999))
}
