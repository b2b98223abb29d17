package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"laundrylink-backend/config"
	"laundrylink-backend/models"
	"laundrylink-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errInsufficientBalance = errors.New("insufficient balance")

type ChangePlanInput struct {
	Plan string `json:"plan" binding:"required,oneof=free pro professional"`
}

type CreateTopupInput struct {
	Amount int64  `json:"amount" binding:"required,min=1000"`
	Method string `json:"method" binding:"omitempty,oneof=qris manual"`
}

// BillingInfo is the owner's billing snapshot.
type BillingInfo struct {
	ID            uuid.UUID  `json:"id"`
	Plan          string     `json:"plan"`
	PlanExpiry    *time.Time `json:"plan_expiry"`
	WalletBalance int64      `json:"wallet_balance"`
}

func billingCacheKey(ownerID string) string {
	return "billing:owner:" + ownerID
}

// GetBilling returns the caller's plan and wallet balance.
func GetBilling(c *gin.Context) {
	ownerID := c.GetString("userId")
	ctx := context.Background()

	var info BillingInfo
	if found, err := utils.GetCache(ctx, config.RDB, billingCacheKey(ownerID), &info); err == nil && found {
		c.JSON(http.StatusOK, info)
		return
	}

	if err := config.DB.Model(&models.Owner{}).
		Where("id = ?", ownerID).
		First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	_ = utils.SetCache(ctx, config.RDB, billingCacheKey(ownerID), info, 60*time.Second)
	c.JSON(http.StatusOK, info)
}

// ChangePlan switches the caller to a new plan, debiting the price from the
// wallet balance under a row lock.
func ChangePlan(c *gin.Context) {
	ownerID := c.GetString("userId")

	var input ChangePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	price := models.PlanPrices[input.Plan]
	var expiry *time.Time
	var newBalance int64

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var owner models.Owner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, "id = ?", ownerID).Error; err != nil {
			return err
		}

		if price > 0 && owner.WalletBalance < price {
			return errInsufficientBalance
		}

		if input.Plan != models.PlanFree {
			e := utils.PlanExpiry(time.Now())
			expiry = &e
		}
		newBalance = owner.WalletBalance - price

		return tx.Model(&owner).Updates(map[string]interface{}{
			"plan":           input.Plan,
			"plan_expiry":    expiry,
			"wallet_balance": newBalance,
		}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errInsufficientBalance):
			utils.RespondWithError(c, http.StatusBadRequest, "Insufficient balance")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		default:
			logrus.WithFields(logrus.Fields{
				"owner_id": ownerID,
				"plan":     input.Plan,
				"error":    err.Error(),
			}).Error("plan change failed")
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to change plan")
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"plan":     input.Plan,
		"price":    price,
		"balance":  newBalance,
	}).Info("plan changed")

	_ = utils.DeleteCache(context.Background(), config.RDB, billingCacheKey(ownerID))

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"plan":           input.Plan,
		"plan_expiry":    expiry,
		"wallet_balance": newBalance,
	})
}

// CreateTopup opens a pending wallet top-up and returns a QR URL encoding
// its reference. Payment confirmation is a separate step.
func CreateTopup(c *gin.Context) {
	ownerID := c.GetString("userId")

	var input CreateTopupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Method == "" {
		input.Method = models.TopupMethodQRIS
	}

	topup := models.Topup{
		OwnerID:   uuid.MustParse(ownerID),
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    models.TopupStatusPending,
		Reference: utils.GenerateTopupReference(),
	}

	if err := config.DB.Create(&topup).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create topup")
		return
	}

	qrText := url.QueryEscape("TOPUP:" + topup.Reference)
	c.JSON(http.StatusCreated, gin.H{
		"id":        topup.ID,
		"reference": topup.Reference,
		"amount":    topup.Amount,
		"method":    topup.Method,
		"status":    topup.Status,
		"qr_url":    "https://api.qrserver.com/v1/create-qr-code/?size=240x240&data=" + qrText,
	})
}

// ConfirmTopup marks a pending topup paid and credits the wallet, under a
// row lock. Stands in for a payment gateway callback; a confirm on an
// already paid topup is a no-op so the credit happens at most once.
func ConfirmTopup(c *gin.Context) {
	ownerID := c.GetString("userId")

	topupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid topup ID format")
		return
	}

	var amount int64
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var topup models.Topup
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND owner_id = ?", topupID, ownerID).
			First(&topup).Error; err != nil {
			return err
		}

		if topup.Status == models.TopupStatusPaid {
			return nil
		}

		now := time.Now()
		if err := tx.Model(&topup).Updates(map[string]interface{}{
			"status":  models.TopupStatusPaid,
			"paid_at": &now,
		}).Error; err != nil {
			return err
		}

		amount = topup.Amount
		return tx.Model(&models.Owner{}).
			Where("id = ?", ownerID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", topup.Amount)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Topup not found")
			return
		}
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"topup_id": topupID,
			"error":    err.Error(),
		}).Error("topup confirm failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm topup")
		return
	}

	if amount > 0 {
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"topup_id": topupID,
			"amount":   amount,
		}).Info("topup credited")
	}

	_ = utils.DeleteCache(context.Background(), config.RDB, billingCacheKey(ownerID))

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
