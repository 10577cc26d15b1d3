package contracts

import (
	"strings"
	"time"
)

// Alert types published to a room. Stored values vary in case, so
// comparisons go through NormalizedType.
const (
	AlertEntry  = "ENTRY"
	AlertUpdate = "UPDATE"
	AlertExit   = "EXIT"
)

// AlertRecord is a typed, immutable view over an externally fetched room
// alert row.
type AlertRecord struct {
	ID          int64     `json:"id"`
	AlertType   string    `json:"alert_type"`
	Ticker      string    `json:"ticker"`
	PublishedAt time.Time `json:"published_at"`
	TradePlanID *int64    `json:"trade_plan_id,omitempty"`
}

// NormalizedType returns the upper-cased alert type
func (a *AlertRecord) NormalizedType() string {
	return strings.ToUpper(a.AlertType)
}

// IsEntry reports whether this is an entry alert
func (a *AlertRecord) IsEntry() bool {
	return a.NormalizedType() == AlertEntry
}
