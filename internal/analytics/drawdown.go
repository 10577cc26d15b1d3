package analytics

import "time"

// DetectDrawdownPeriods scans the equity curve once with an explicit
// two-state machine (no drawdown / in drawdown), emitting each
// peak-to-trough-to-recovery cycle. A drawdown opens at the last known
// peak date when equity dips below the peak, deepens while below it,
// and closes recovered when a new peak is set. A period still open at
// the end of the curve is emitted unresolved. Periods no deeper than
// the noise threshold are dropped; emitted periods never overlap.
func DetectDrawdownPeriods(curve []EquityPoint) []DrawdownPeriod {
	periods := make([]DrawdownPeriod, 0)

	var current *DrawdownPeriod
	peakEquity := 0.0
	var peakDate *time.Time
	if len(curve) > 0 {
		d := curve[0].Date
		peakDate = &d
	}

	for _, point := range curve {
		if point.Equity > peakEquity {
			// New peak closes any open drawdown
			if current != nil {
				end := point.Date
				recoveryDays := int64(end.Sub(current.StartDate).Hours() / 24)
				current.EndDate = &end
				current.RecoveryDate = &end
				current.IsRecovered = true
				current.RecoveryDays = &recoveryDays
				periods = append(periods, *current)
				current = nil
			}
			peakEquity = point.Equity
			d := point.Date
			peakDate = &d
		} else if point.Drawdown > 0 {
			if current != nil {
				// Extend the open period, deepening if needed
				if point.Drawdown > current.MaxDrawdown {
					current.MaxDrawdown = point.Drawdown
					current.MaxDrawdownPercent = point.DrawdownPercent
				}
				current.DurationDays = int64(point.Date.Sub(current.StartDate).Hours() / 24)
			} else {
				// Open a new period anchored at the last peak
				start := point.Date
				if peakDate != nil {
					start = *peakDate
				}
				current = &DrawdownPeriod{
					StartDate:          start,
					MaxDrawdown:        point.Drawdown,
					MaxDrawdownPercent: point.DrawdownPercent,
				}
			}
		}
	}

	// Trailing open drawdown stays unresolved
	if current != nil {
		periods = append(periods, *current)
	}

	// Drop noise-level periods
	filtered := periods[:0]
	for _, p := range periods {
		if p.MaxDrawdownPercent > drawdownNoiseThreshold {
			filtered = append(filtered, p)
		}
	}

	return filtered
}
