package models

import "time"

// TradeStatus tracks review of a logged trade.
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeApproved TradeStatus = "approved"
	TradeRejected TradeStatus = "rejected"
)

// Trade is a participant-logged trade entry.
type Trade struct {
	ID        string      `db:"id" json:"id"`
	UserID    string      `db:"user_id" json:"user_id"`
	Amount    float64     `db:"amount" json:"amount"`
	Currency  string      `db:"currency" json:"currency"`
	Status    TradeStatus `db:"status" json:"status"`
	TradeDate time.Time   `db:"trade_date" json:"trade_date"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
