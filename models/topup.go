package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TopupStatusPending = "pending"
	TopupStatusPaid    = "paid"

	TopupMethodQRIS   = "qris"
	TopupMethodManual = "manual"
)

// Topup is a wallet credit request. Confirmation marks it paid and credits
// the owner's wallet; a topup is credited at most once.
type Topup struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`

	Amount    int64      `gorm:"not null" json:"amount"`
	Method    string     `gorm:"type:varchar(20);not null;default:'qris'" json:"method"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference string     `gorm:"uniqueIndex;not null" json:"reference"`
	PaidAt    *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Topup) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
