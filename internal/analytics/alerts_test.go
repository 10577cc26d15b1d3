package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revtradingpros/backend/internal/contracts"
)

func TestAlertConversion(t *testing.T) {
	alerts := []contracts.AlertRecord{
		alert("ENTRY", "AAPL", day(2026, 7, 1)),
		alert("ENTRY", "TSLA", day(2026, 7, 2)),
		alert("entry", "NVDA", day(2026, 7, 3)), // type match is case-insensitive
		alert("UPDATE", "AAPL", day(2026, 7, 4)),
		alert("EXIT", "AAPL", day(2026, 7, 5)),
	}
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 7, 6), 100, 2),
		closedTrade("TSLA", day(2026, 7, 7), -50, -1),
		closedTrade("AMD", day(2026, 7, 8), 30, 1),
	}

	out := AlertConversion(alerts, trades)

	assert.Equal(t, int64(5), out.TotalAlerts)
	assert.Equal(t, int64(3), out.EntryAlerts)
	assert.Equal(t, int64(1), out.UpdateAlerts)
	assert.Equal(t, int64(1), out.ExitAlerts)

	// AAPL and TSLA were alerted and traded; NVDA was not traded
	assert.Equal(t, int64(2), out.AlertsWithTrades)
	assert.Equal(t, int64(1), out.AlertsWithoutTrades)
	assert.InDelta(t, 2.0/3.0*100.0, out.ConversionRate, 1e-9)

	// Profitable trades over total alerts: 2 of 5
	assert.InDelta(t, 40.0, out.ProfitableConversionRate, 1e-9)
}

func TestAlertConversion_CarriesTimeToTradeField(t *testing.T) {
	out := AlertConversion(
		[]contracts.AlertRecord{alert("ENTRY", "AAPL", day(2026, 7, 1))},
		[]contracts.TradeRecord{closedTrade("AAPL", day(2026, 7, 2), 100, 2)},
	)

	// No alert-to-trade linkage exists yet, so the published latency
	// metric is always zero but must stay in the payload
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	got, ok := decoded["avg_time_to_trade_hours"]
	require.True(t, ok, "avg_time_to_trade_hours missing from payload")
	assert.Equal(t, 0.0, got)
}

func TestAlertConversion_NoEntryAlerts(t *testing.T) {
	alerts := []contracts.AlertRecord{
		alert("UPDATE", "AAPL", day(2026, 7, 1)),
	}

	out := AlertConversion(alerts, nil)

	assert.Zero(t, out.ConversionRate)
	assert.Zero(t, out.AlertsWithTrades)
	assert.Zero(t, out.ProfitableConversionRate)
}

func TestAlertConversion_Empty(t *testing.T) {
	out := AlertConversion(nil, nil)

	assert.Zero(t, out.TotalAlerts)
	assert.Zero(t, out.ConversionRate)
	assert.Zero(t, out.ProfitableConversionRate)
}
