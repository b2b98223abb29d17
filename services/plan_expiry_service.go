package services

import (
	"time"

	"laundrylink-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlanExpiryService downgrades owners whose paid plan has lapsed.
type PlanExpiryService struct {
	db *gorm.DB
}

func NewPlanExpiryService(db *gorm.DB) *PlanExpiryService {
	return &PlanExpiryService{db: db}
}

// StartScheduler sweeps once at startup and then daily at midnight.
func (s *PlanExpiryService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 0 * * *", s.DowngradeExpiredPlans)
	s.DowngradeExpiredPlans()

	c.Start()
	logrus.Info("plan expiry scheduler started")
}

// DowngradeExpiredPlans moves owners with a lapsed paid plan back to free.
func (s *PlanExpiryService) DowngradeExpiredPlans() {
	result := s.db.Model(&models.Owner{}).
		Where("plan <> ? AND plan_expiry IS NOT NULL AND plan_expiry < ?", models.PlanFree, time.Now()).
		Updates(map[string]interface{}{
			"plan":        models.PlanFree,
			"plan_expiry": nil,
		})
	if result.Error != nil {
		logrus.Errorf("plan expiry sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logrus.WithField("owners", result.RowsAffected).Info("expired plans downgraded")
	}
}
