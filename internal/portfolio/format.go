package portfolio

import (
	"math"

	"github.com/dustin/go-humanize"
)

// USD formats v as "$1,234.50".
func USD(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", math.Abs(v))
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// SignedUSD formats v with an explicit sign, as "$+12.00" or "$-3.25".
func SignedUSD(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return "$" + sign + humanize.FormatFloat("#,###.##", math.Abs(v))
}

// OptionalSignedUSD formats a nullable amount; nil renders as a dash.
func OptionalSignedUSD(v *float64) string {
	if v == nil {
		return "—"
	}
	return SignedUSD(*v)
}
