package service

import (
	"fmt"
	"strings"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// BuildAllocationPrompt lists the trades in the order they will be
// correlated by position, numbered from 1. The strict variant is used
// after the oracle already produced something unusable.
func BuildAllocationPrompt(trades []domain.Trade, balance decimal.Decimal, strict bool) string {
	b := balance.StringFixed(2)

	var sb strings.Builder
	sb.WriteString("System: You are a trading allocation AI. Respond with a JSON array and nothing else.\n")
	sb.WriteString(fmt.Sprintf("Available balance: $%s\n", b))
	sb.WriteString("Task: choose a whole number quantity for each trade so the total cost stays within the balance.\n")
	sb.WriteString(`Format: [{"id": number, "quantity": number, "explanation": "string"}]`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString(fmt.Sprintf("1. Sum of price * quantity must not exceed $%s\n", b))
	sb.WriteString("2. Quantities are non-negative integers\n")
	sb.WriteString("3. Use the ids exactly as listed\n")
	sb.WriteString("4. Explanations under 50 characters\n")
	if strict {
		sb.WriteString("5. Your previous answer could not be used. Output ONLY the JSON array, starting with [ and ending with ]\n")
		sb.WriteString(fmt.Sprintf("6. Spending more than $%s is invalid. Spend less if unsure\n", b))
	}

	sb.WriteString("\nTrades:\n")
	for i, t := range trades {
		sb.WriteString(fmt.Sprintf(
			"%d. ID:%d | %s | $%s | %s risk | %s\n",
			i+1,
			t.ID,
			t.Symbol,
			t.UnitPrice.StringFixed(2),
			t.RiskLevel,
			t.Sector,
		))
	}
	sb.WriteString("\nOutput the allocation array now:")

	return sb.String()
}
