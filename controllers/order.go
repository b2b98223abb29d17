package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"laundrylink-backend/config"
	"laundrylink-backend/models"
	"laundrylink-backend/services"
	"laundrylink-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier sends order status updates to customers when configured. Set in
// main; nil disables notifications.
var Notifier *services.NotificationService

type CreateOrderInput struct {
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
	Note    string    `json:"note"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending accepted processing completed cancelled"`
}

type RateOrderInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CustomerOrderView is an order joined with the laundry's display name.
type CustomerOrderView struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	LaundryName string    `json:"laundry_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerOrderView is an order joined with the customer's display name.
type OwnerOrderView struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Status       string    `json:"status"`
	Note         string    `json:"note"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateOrder places a new order with the given laundry. Customer only.
func CreateOrder(c *gin.Context) {
	customerID := c.GetString("userId")

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var owner models.Owner
	if err := config.DB.First(&owner, "id = ?", input.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Laundry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	order := models.Order{
		CustomerID: uuid.MustParse(customerID),
		OwnerID:    input.OwnerID,
		Status:     models.OrderStatusPending,
		Note:       input.Note,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders lists the caller's orders, newest first. Customer only.
func GetMyOrders(c *gin.Context) {
	customerID := c.GetString("userId")

	var orders []CustomerOrderView
	if err := config.DB.Table("orders").
		Select("orders.id, orders.owner_id, orders.status, orders.note, orders.created_at, orders.updated_at, owners.laundry_name").
		Joins("JOIN owners ON owners.id = orders.owner_id").
		Where("orders.customer_id = ?", customerID).
		Order("orders.created_at DESC").
		Scan(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetIncomingOrders lists orders placed with the caller's laundry, newest
// first. Owner only.
func GetIncomingOrders(c *gin.Context) {
	ownerID := c.GetString("userId")

	var orders []OwnerOrderView
	if err := config.DB.Table("orders").
		Select("orders.id, orders.customer_id, orders.status, orders.note, orders.created_at, orders.updated_at, customers.name AS customer_name").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.owner_id = ?", ownerID).
		Order("orders.created_at DESC").
		Scan(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus sets an order's status. The update is scoped to the
// owning owner, so another owner's attempt reads as not found.
func UpdateOrderStatus(c *gin.Context) {
	ownerID := c.GetString("userId")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Order{}).
		Where("id = ? AND owner_id = ?", orderID, ownerID).
		Update("status", input.Status)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if Notifier != nil {
		go Notifier.SendOrderStatusUpdate(order)
	}

	c.JSON(http.StatusOK, order)
}

// RateOrder upserts the caller's rating for a completed order and recomputes
// the owner's aggregate rating. Customer only.
func RateOrder(c *gin.Context) {
	customerID := c.GetString("userId")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input RateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status != models.OrderStatusCompleted {
		utils.RespondWithError(c, http.StatusBadRequest, "Order not completed")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		rating := models.OwnerRating{
			OrderID:    order.ID,
			OwnerID:    order.OwnerID,
			CustomerID: order.CustomerID,
			Rating:     input.Rating,
			Comment:    input.Comment,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment"}),
		}).Create(&rating).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.OwnerRating{}).
			Where("owner_id = ?", order.OwnerID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Owner{}).
			Where("id = ?", order.OwnerID).
			Update("rating", utils.RoundRating(avg)).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id":    order.ID,
			"customer_id": customerID,
			"error":       err.Error(),
		}).Error("rating submission failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save rating")
		return
	}

	// Listing shows the aggregate rating.
	_ = utils.DeleteCache(context.Background(), config.RDB, laundryListCacheKey)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
