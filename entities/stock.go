package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProductStock is the per-product ledger record. AvailableStock and
// ReservedStock never go negative; reservations move units from one
// counter to the other, only a restock changes their sum.
type ProductStock struct {
	ProductID      uuid.UUID `json:"product_id" db:"product_id"`
	AvailableStock int       `json:"available_stock" db:"available_stock"`
	ReservedStock  int       `json:"reserved_stock" db:"reserved_stock"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
