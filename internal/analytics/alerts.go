package analytics

import (
	"github.com/revtradingpros/backend/internal/contracts"
)

// AlertConversion computes alert-to-trade effectiveness. Conversion is
// approximated by intersecting the tickers of ENTRY alerts with the
// tickers that were actually traded in the range.
//
// The profitable conversion rate divides profitable trades by the total
// alert count, not by matched alerts; that is the published ratio
// definition the dashboards use.
func AlertConversion(alerts []contracts.AlertRecord, trades []contracts.TradeRecord) AlertEffectiveness {
	totalAlerts := int64(len(alerts))

	var entryAlerts, updateAlerts, exitAlerts int64
	alertTickers := make(map[string]struct{})
	for _, a := range alerts {
		switch a.NormalizedType() {
		case contracts.AlertEntry:
			entryAlerts++
			alertTickers[a.Ticker] = struct{}{}
		case contracts.AlertUpdate:
			updateAlerts++
		case contracts.AlertExit:
			exitAlerts++
		}
	}

	tradeTickers := make(map[string]struct{})
	var profitableTrades int64
	for _, t := range trades {
		tradeTickers[t.Ticker] = struct{}{}
		if t.PnLValue() > 0 {
			profitableTrades++
		}
	}

	var alertsWithTrades int64
	for ticker := range alertTickers {
		if _, ok := tradeTickers[ticker]; ok {
			alertsWithTrades++
		}
	}

	conversionRate := 0.0
	if entryAlerts > 0 {
		conversionRate = float64(alertsWithTrades) / float64(entryAlerts) * 100.0
	}

	profitableConversionRate := 0.0
	if totalAlerts > 0 {
		profitableConversionRate = float64(profitableTrades) / float64(totalAlerts) * 100.0
	}

	return AlertEffectiveness{
		TotalAlerts:              totalAlerts,
		AlertsWithTrades:         alertsWithTrades,
		AlertsWithoutTrades:      entryAlerts - alertsWithTrades,
		ConversionRate:           conversionRate,
		ProfitableConversionRate: profitableConversionRate,
		// Ticker intersection cannot tell which alert led to which
		// trade, so there is no latency to average yet. The field stays
		// in the payload for consumers that read it.
		AvgTimeToTradeHours: 0,
		EntryAlerts:         entryAlerts,
		UpdateAlerts:        updateAlerts,
		ExitAlerts:          exitAlerts,
	}
}
