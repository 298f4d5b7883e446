package split

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// UPI deep links only carry the fields this product uses: pa (payee
// address), pn (payee name), am (amount) and cu (currency, fixed INR).
const upiCurrency = "INR"

// GroupLink builds the group-level link carrying the full total.
func GroupLink(payeeAddress string, total decimal.Decimal) string {
	return "upi://pay?pa=" + url.QueryEscape(payeeAddress) +
		"&am=" + total.String() +
		"&cu=" + upiCurrency
}

// MemberLink builds a per-member link carrying the member's name and share.
func MemberLink(payeeAddress, payerName string, share decimal.Decimal) string {
	return "upi://pay?pa=" + url.QueryEscape(payeeAddress) +
		"&pn=" + url.QueryEscape(payerName) +
		"&am=" + share.StringFixed(2) +
		"&cu=" + upiCurrency
}

// Share computes the equal per-member amount: round(total/n, 2).
func Share(total decimal.Decimal, memberCount int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(memberCount))).Round(2)
}
