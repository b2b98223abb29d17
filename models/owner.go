package models

import (
	"time"

	"laundrylink-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Owner struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LaundryName string    `gorm:"not null" json:"laundry_name"`
	Address     string    `gorm:"not null" json:"address"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	PhotoURL    string    `json:"photo_url"`
	Rating      float64   `gorm:"type:decimal(3,2);default:0" json:"rating"`

	Plan          string     `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	PlanExpiry    *time.Time `json:"plan_expiry"`
	WalletBalance int64      `gorm:"not null;default:0" json:"wallet_balance"`

	Orders  []Order       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings []OwnerRating `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Topups  []Topup       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Initialize UUID and hash the password before creating
func (o *Owner) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(o.Password)
	if err != nil {
		return err
	}
	o.Password = hashed
	return
}
