package cli

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// formatVND renders an amount the way Vietnamese receipts do: whole dong,
// dot-separated thousands, e.g. "15.000 VND".
func formatVND(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + " VND"
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
