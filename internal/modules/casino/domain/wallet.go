package domain

import "time"

// Wallet is the player's single mutable balance. The engine never
// overwrites it; it only applies signed deltas.
type Wallet struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName overrides the table name
func (Wallet) TableName() string {
	return "wallets"
}
