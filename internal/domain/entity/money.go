package entity

import (
	"strconv"
	"strings"

	"storefront/internal/domain/constants"
)

// FormatPrice renders an amount the way the storefront shows prices: the rupee
// sign followed by en-IN digit grouping, e.g. ₹1,23,456.
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return sign + constants.CurrencySymbol + groupIndian(strconv.FormatInt(amount, 10))
}

// groupIndian groups the last three digits, then every two digits before them.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
