package catalog

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyPrinter renders grouped decimals for the sub-thousand branch
// ("₦999", "₦1,234.50" never occurs since 1,234 promotes to K, but cart
// totals below the K boundary keep locale separators).
var currencyPrinter = message.NewPrinter(language.English)

// FormatPrice renders a local-currency amount for display with
// magnitude-based abbreviation:
//
//	amount >= 1,000,000        -> "₦<amount/1e6 to 1 decimal>M"
//	1,000 <= amount < 1,000,000 -> "₦<amount/1e3 to 1 decimal>K"
//	otherwise                   -> "₦<amount with thousands separators>"
//
// The K branch divides and rounds without promoting: FormatPrice(999999)
// is "₦1000.0K", not "₦1.0M". Negative amounts fall through to the plain
// branch and keep their sign; callers are expected to pass non-negative
// values.
func FormatPrice(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("₦%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("₦%.1fK", amount/1_000)
	case amount == math.Trunc(amount):
		return currencyPrinter.Sprintf("₦%d", int64(amount))
	default:
		return currencyPrinter.Sprintf("₦%.2f", amount)
	}
}
