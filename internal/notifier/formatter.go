package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"GoldSentinel/internal/model"
	"GoldSentinel/internal/strategy"
)

// TimeLayout is how run times appear in messages; times are converted to UTC.
const TimeLayout = "2006-01-02 15:04 UTC"

// ConfirmedTag marks a signal backed by momentum or spot consensus.
const ConfirmedTag = " (confirmed)"

func price(v float64) string { return humanize.FormatFloat("#,###.##", v) }

func stamp(now time.Time) string { return now.UTC().Format(TimeLayout) }

// FormatAlert renders a BUY or SELL signal with its levels.
func FormatAlert(label string, now time.Time, sig model.Signal, source string) string {
	arrow := "🟢"
	if sig.Mode == model.ModeSell {
		arrow = "🔴"
	}
	tag := ""
	if sig.Confirmed {
		tag = ConfirmedTag
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🟡 *%s ALERT*\n", label))
	b.WriteString(fmt.Sprintf("Time  : %s\n", stamp(now)))
	b.WriteString(fmt.Sprintf("%s *%s*%s\n", arrow, sig.Mode, tag))
	b.WriteString(fmt.Sprintf("Entry : %s\n", price(sig.Entry)))
	b.WriteString(fmt.Sprintf("TP    : %s\n", price(sig.TakeProfit)))
	b.WriteString(fmt.Sprintf("SL    : %s\n", price(sig.StopLoss)))
	b.WriteString(fmt.Sprintf("ATR   : %s\n", price(sig.Volatility)))
	b.WriteString(fmt.Sprintf("RR    : %s\n", strategy.RewardRiskLabel))
	b.WriteString(fmt.Sprintf("Source: %s (SMA) + multi-source check", source))
	return b.String()
}

// FormatStatus renders the reference levels when the signal is WAIT.
func FormatStatus(label string, now time.Time, ind model.Indicators, source string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🟡 *%s STATUS*\n", label))
	b.WriteString(fmt.Sprintf("Time  : %s\n", stamp(now)))
	b.WriteString("⚖️ *WAIT*\n")
	b.WriteString(fmt.Sprintf("Price : %s\n", price(ind.Last)))
	b.WriteString(fmt.Sprintf("SMA20 : %s\n", price(ind.SMAShort)))
	b.WriteString(fmt.Sprintf("SMA50 : %s\n", price(ind.SMALong)))
	b.WriteString(fmt.Sprintf("ATR   : %s\n", price(ind.Volatility)))
	b.WriteString(fmt.Sprintf("Source: %s (SMA)", source))
	return b.String()
}

// FormatSpotUpdate renders the degraded price-only update. Absent readings
// are left out.
func FormatSpotUpdate(label string, now time.Time, spots model.SpotReadings) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🟡 *%s UPDATE*\n", label))
	b.WriteString(fmt.Sprintf("Time  : %s\n", stamp(now)))
	for _, r := range spots.Present() {
		b.WriteString(fmt.Sprintf("%-11s : %s\n", r.Source, price(r.Price)))
	}
	b.WriteString("Signal: WAIT (historical data required for entry/TP/SL)\n")
	b.WriteString("Source: Multi-source fallback")
	return b.String()
}

// FormatAllFailed is sent when no source produced any data.
func FormatAllFailed(now time.Time) string {
	return fmt.Sprintf("⚠️ All sources failed at %s. Try again later.", stamp(now))
}

// FormatError is the best-effort report of a run that ended in error.
func FormatError(err error) string {
	return fmt.Sprintf("⚠️ Error: %v", err)
}
