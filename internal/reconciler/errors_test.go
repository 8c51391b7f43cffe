package reconciler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_withinBalance(t *testing.T) {
	balance := decimal.NewFromInt(100)

	require.True(t, withinBalance(decimal.NewFromInt(100), balance))
	require.True(t, withinBalance(balance.Add(decimal.New(1, -7)), balance))
	require.False(t, withinBalance(balance.Add(decimal.New(1, -5)), balance))
}
