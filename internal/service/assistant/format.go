package assistant

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const humanDate = "January 2, 2006"

func formatCurrency(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return "$" + humanize.Comma(int64(v))
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatOptionalCurrency(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatCurrency(*v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(humanDate)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
