package strategy

import "GoldSentinel/internal/model"

// ConsensusTolerance is the fraction of volatility a spot price must move
// past the entry, in the signal's direction, to count as agreement.
const ConsensusTolerance = 0.25

// Adjust confirms a directional signal when at least one independent spot
// reading agrees with it. It never downgrades or cancels a signal.
func Adjust(sig model.Signal, spots model.SpotReadings) model.Signal {
	if !sig.Directional() || sig.Volatility == 0 {
		return sig
	}
	if Agreeing(sig, spots) > 0 {
		sig.Confirmed = true
	}
	return sig
}

// Agreeing counts present spot readings beyond the tolerance band.
func Agreeing(sig model.Signal, spots model.SpotReadings) int {
	tol := ConsensusTolerance * sig.Volatility
	n := 0
	for _, r := range spots {
		if !r.Present() {
			continue
		}
		switch sig.Mode {
		case model.ModeBuy:
			if r.Price >= sig.Entry+tol {
				n++
			}
		case model.ModeSell:
			if r.Price <= sig.Entry-tol {
				n++
			}
		}
	}
	return n
}
