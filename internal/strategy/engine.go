package strategy

import "GoldSentinel/internal/model"

// Level multipliers applied to the volatility proxy. Their ratio is the
// fixed reward:risk label shown in alerts.
const (
	TakeProfitMultiple = 2.0
	StopLossMultiple   = 1.5
	RewardRiskLabel    = "~1:1.33"
)

// Derive maps indicators to a directional signal.
// Bull alignment: last > SMA20 > SMA50
// Bear alignment: last < SMA20 < SMA50
// Anything else, including ties, is WAIT.
func Derive(ind model.Indicators) model.Signal {
	bullish := ind.Last > ind.SMAShort && ind.SMAShort > ind.SMALong
	bearish := ind.Last < ind.SMAShort && ind.SMAShort < ind.SMALong

	vol := ind.Volatility
	switch {
	case bullish:
		return model.Signal{
			Mode:       model.ModeBuy,
			Entry:      ind.Last,
			TakeProfit: ind.Last + TakeProfitMultiple*vol,
			StopLoss:   ind.Last - StopLossMultiple*vol,
			Volatility: vol,
			Confirmed:  ind.SMAShort > ind.SMAShortPrev && ind.SMALong > ind.SMALongPrev,
		}
	case bearish:
		return model.Signal{
			Mode:       model.ModeSell,
			Entry:      ind.Last,
			TakeProfit: ind.Last - TakeProfitMultiple*vol,
			StopLoss:   ind.Last + StopLossMultiple*vol,
			Volatility: vol,
			Confirmed:  ind.SMAShort < ind.SMAShortPrev && ind.SMALong < ind.SMALongPrev,
		}
	default:
		return model.Signal{Mode: model.ModeWait, Volatility: vol}
	}
}
