package split

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLink(t *testing.T, link string) url.Values {
	t.Helper()
	require.True(t, strings.HasPrefix(link, "upi://pay?"))
	values, err := url.ParseQuery(strings.TrimPrefix(link, "upi://pay?"))
	require.NoError(t, err)
	return values
}

func TestGroupLink(t *testing.T) {
	link := GroupLink("chai shop@upi", decimal.NewFromInt(300))
	values := parseLink(t, link)

	// pa must percent-decode back to the exact handle.
	assert.Equal(t, "chai shop@upi", values.Get("pa"))
	assert.Equal(t, "300", values.Get("am"))
	assert.Equal(t, "INR", values.Get("cu"))
	assert.Empty(t, values.Get("pn"), "group links carry no payer name")
}

func TestMemberLink(t *testing.T) {
	share := decimal.RequireFromString("33.33")
	link := MemberLink("shop@upi", "Meera & Co", share)
	values := parseLink(t, link)

	assert.Equal(t, "shop@upi", values.Get("pa"))
	assert.Equal(t, "Meera & Co", values.Get("pn"))
	assert.Equal(t, "33.33", values.Get("am"))
	assert.Equal(t, "INR", values.Get("cu"))

	// am must parse back to the numeric share.
	parsed, err := decimal.NewFromString(values.Get("am"))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(share))
}

func TestShare(t *testing.T) {
	tests := []struct {
		total   string
		members int
		want    string
	}{
		{"300", 3, "100.00"},
		{"100", 3, "33.33"},
		{"0.05", 2, "0.03"}, // halves round away from zero
		{"99.99", 4, "25.00"},
		{"1", 1, "1.00"},
	}

	for _, tt := range tests {
		total := decimal.RequireFromString(tt.total)
		got := Share(total, tt.members)
		assert.Equal(t, tt.want, got.StringFixed(2), "total=%s n=%d", tt.total, tt.members)
	}
}
