package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revtradingpros/backend/internal/contracts"
)

// Repository is the ingestion adapter over the room trade/alert tables.
// It satisfies Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new analytics repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FetchTrades returns a room's closed, non-deleted trades with exit
// dates inside [from, to], ascending by exit date.
func (r *Repository) FetchTrades(ctx context.Context, roomSlug string, from, to time.Time) ([]contracts.TradeRecord, error) {
	query := `
		SELECT id, ticker, direction, quantity, entry_date, entry_price,
		       exit_date, exit_price, pnl, pnl_percent, result, setup, holding_days
		FROM room_trades
		WHERE room_slug = $1
		  AND status = 'closed'
		  AND deleted_at IS NULL
		  AND exit_date >= $2
		  AND exit_date <= $3
		ORDER BY exit_date ASC
	`

	rows, err := r.pool.Query(ctx, query, roomSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []contracts.TradeRecord
	for rows.Next() {
		var t contracts.TradeRecord
		if err := rows.Scan(
			&t.ID, &t.Ticker, &t.Direction, &t.Quantity, &t.EntryDate, &t.EntryPrice,
			&t.ExitDate, &t.ExitPrice, &t.PnL, &t.PnLPercent, &t.Result, &t.Setup, &t.HoldingDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trades: %w", err)
	}

	return trades, nil
}

// FetchAlerts returns a room's published, non-deleted alerts whose
// publish date falls inside [from, to], ascending by publish time.
func (r *Repository) FetchAlerts(ctx context.Context, roomSlug string, from, to time.Time) ([]contracts.AlertRecord, error) {
	query := `
		SELECT id, alert_type, ticker, published_at, trade_plan_id
		FROM room_alerts
		WHERE room_slug = $1
		  AND deleted_at IS NULL
		  AND is_published = true
		  AND DATE(published_at) >= $2
		  AND DATE(published_at) <= $3
		ORDER BY published_at ASC
	`

	rows, err := r.pool.Query(ctx, query, roomSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []contracts.AlertRecord
	for rows.Next() {
		var a contracts.AlertRecord
		if err := rows.Scan(&a.ID, &a.AlertType, &a.Ticker, &a.PublishedAt, &a.TradePlanID); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	return alerts, nil
}
