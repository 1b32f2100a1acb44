package wishitem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tmori/wishkeeper/internal/utils"
)

// FormatPrice renders a price for display. A nil or zero price renders as an
// empty string. JPY has no minor unit; other currencies get two decimals.
func FormatPrice(price *float64, currency Currency) string {
	amount := utils.Value(price)
	if amount == 0 {
		return ""
	}

	if currency == "" {
		currency = CurrencyJPY
	}

	switch currency {
	case CurrencyJPY:
		return "￥" + groupThousands(strconv.FormatFloat(math.Round(amount), 'f', 0, 64))
	case CurrencyUSD:
		return "$" + formatWithDecimals(amount)
	default:
		return string(currency) + " " + formatWithDecimals(amount)
	}
}

func formatWithDecimals(v float64) string {
	formatted := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(formatted, ".")
	return groupThousands(whole) + "." + frac
}

// groupThousands inserts comma separators into a decimal integer string.
func groupThousands(digits string) string {
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// PriorityLabel returns the display label for a priority.
func PriorityLabel(priority Priority) string {
	switch priority {
	case PriorityHigh:
		return "高"
	case PriorityMiddle:
		return "中"
	case PriorityLow:
		return "低"
	default:
		return "未設定"
	}
}

// StatusLabel returns the display label for a status.
func StatusLabel(status Status) string {
	switch status {
	case StatusPurchased:
		return "購入済み"
	case StatusUnpurchased:
		return "未購入"
	default:
		return "未設定"
	}
}

// PriorityClass returns the badge CSS class used by the item list view.
func PriorityClass(priority Priority) string {
	switch priority {
	case PriorityHigh:
		return "badge-error"
	case PriorityMiddle:
		return "badge-warning"
	case PriorityLow:
		return "badge-info"
	default:
		return "badge-ghost"
	}
}

// Summary is a one-line description used in logs and admin views.
func (i *Item) Summary() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, PriorityLabel(i.Priority), StatusLabel(i.Status))
}
