// services/notification_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"laundrylink-backend/models"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

var statusMessages = map[string]string{
	models.OrderStatusPending:    "your order is waiting for confirmation",
	models.OrderStatusAccepted:   "your order has been accepted",
	models.OrderStatusProcessing: "your laundry is being processed",
	models.OrderStatusCompleted:  "your laundry is ready for pickup",
	models.OrderStatusCancelled:  "your order has been cancelled",
}

// NotificationService sends order status updates to customers via Twilio.
type NotificationService struct {
	db      *gorm.DB
	client  *twilio.RestClient
	enabled bool
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	s := &NotificationService{db: db, enabled: accountSid != "" && authToken != ""}
	if !s.enabled {
		logrus.Info("Twilio credentials not set, order notifications disabled")
		return s
	}

	s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return s
}

// SendOrderStatusUpdate messages the order's customer about the new status
// and records the attempt. No-op when Twilio is not configured.
func (s *NotificationService) SendOrderStatusUpdate(order models.Order) {
	if !s.enabled {
		return
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		logrus.WithField("order_id", order.ID).Warnf("customer lookup for notification failed: %v", err)
		return
	}

	var laundry models.Owner
	if err := s.db.First(&laundry, "id = ?", order.OwnerID).Error; err != nil {
		logrus.WithField("order_id", order.ID).Warnf("owner lookup for notification failed: %v", err)
		return
	}

	text, ok := statusMessages[order.Status]
	if !ok {
		return
	}
	message := fmt.Sprintf("Hi %s, %s: %s.", customer.Name, laundry.LaundryName, text)

	// WhatsApp for E.164 numbers, SMS otherwise
	channel := "sms"
	to := customer.Phone
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	result := "sent"
	errorMsg := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		logrus.WithField("order_id", order.ID).Warnf("failed to send notification: %v", err)
		result = "failed"
		errorMsg = err.Error()
	}

	entry := models.NotificationLog{
		OrderID:      order.ID,
		CustomerID:   customer.ID,
		Status:       order.Status,
		Message:      message,
		Channel:      channel,
		Result:       result,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithField("order_id", order.ID).Warnf("failed to log notification: %v", err)
	}
}
