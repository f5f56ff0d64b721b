package domain_test

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBalanceChanges(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name string
		in   []domain.BalanceChange
		want []domain.BalanceChange
	}{
		{
			name: "distinct accounts keep order",
			in:   []domain.BalanceChange{domain.Credit("b", d(5)), domain.Debit("a", d(3), false)},
			want: []domain.BalanceChange{domain.Credit("b", d(5)), domain.Debit("a", d(3), false)},
		},
		{
			name: "same account folds into one delta",
			in:   []domain.BalanceChange{domain.Debit("a", d(50), false), domain.Credit("a", d(80))},
			want: []domain.BalanceChange{{AccountID: "a", Delta: d(30)}},
		},
		{
			name: "net zero is dropped",
			in:   []domain.BalanceChange{domain.Debit("a", d(10), false), domain.Credit("a", d(10))},
			want: []domain.BalanceChange{},
		},
		{
			name: "guard survives merge",
			in:   []domain.BalanceChange{domain.Credit("a", d(10)), domain.Debit("a", d(30), true)},
			want: []domain.BalanceChange{{AccountID: "a", Delta: d(-20), RequireSufficientFunds: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.MergeBalanceChanges(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].AccountID, got[i].AccountID)
				assert.True(t, tt.want[i].Delta.Equal(got[i].Delta), "delta %s != %s", tt.want[i].Delta, got[i].Delta)
				assert.Equal(t, tt.want[i].RequireSufficientFunds, got[i].RequireSufficientFunds)
			}
		})
	}
}

func TestRecordBalanceEffects(t *testing.T) {
	inc := domain.Income{AccountID: "acc", Amount: decimal.NewFromInt(100)}
	exp := domain.Expense{AccountID: "acc", Amount: decimal.NewFromInt(40)}

	assert.True(t, inc.BalanceEffect().Delta.Equal(decimal.NewFromInt(100)))
	assert.False(t, inc.BalanceEffect().RequireSufficientFunds)
	assert.True(t, exp.BalanceEffect().Delta.Equal(decimal.NewFromInt(-40)))
	assert.True(t, exp.BalanceEffect().RequireSufficientFunds)
}
