package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"welile-backend/internal/domain"
)

// Amounts carries the money figures of one completed payment application.
type Amounts struct {
	Amount        decimal.Decimal
	Commission    decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	PaymentMethod string
	PaymentDate   time.Time
}

// TenantSnapshot and AgentSnapshot freeze the party details at application
// time; later edits to the live records do not rewrite issued receipts.
type TenantSnapshot struct {
	Name  string
	Phone string
}

type AgentSnapshot struct {
	Name string
}

// Number builds a receipt number from a prefix and a nanosecond timestamp.
// Uniqueness is advisory, not store-enforced.
func Number(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, at.UnixNano())
}

// Generate assembles the receipt view model and its share-ready text block.
// Pure and deterministic: no I/O, no clock reads.
func Generate(number string, amounts Amounts, tenant TenantSnapshot, agent AgentSnapshot) domain.Receipt {
	r := domain.Receipt{
		Number:        number,
		TenantName:    tenant.Name,
		TenantPhone:   tenant.Phone,
		AgentName:     agent.Name,
		Amount:        amounts.Amount,
		Commission:    amounts.Commission,
		BalanceBefore: amounts.BalanceBefore,
		BalanceAfter:  amounts.BalanceAfter,
		PaymentMethod: amounts.PaymentMethod,
		PaymentDate:   amounts.PaymentDate,
	}
	r.ShareText = shareText(r)
	return r
}

func shareText(r domain.Receipt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "WELILE PAYMENT RECEIPT\n")
	fmt.Fprintf(&b, "Receipt No: %s\n", r.Number)
	fmt.Fprintf(&b, "Date: %s\n", r.PaymentDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Tenant: %s\n", r.TenantName)
	if r.TenantPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", r.TenantPhone)
	}
	fmt.Fprintf(&b, "Collected by: %s\n", r.AgentName)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Amount Paid: UGX %s\n", r.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Method: %s\n", r.PaymentMethod)
	fmt.Fprintf(&b, "Commission: UGX %s\n", r.Commission.StringFixed(2))
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Balance Before: UGX %s\n", r.BalanceBefore.StringFixed(2))
	fmt.Fprintf(&b, "Balance After: UGX %s\n", r.BalanceAfter.StringFixed(2))

	return b.String()
}
