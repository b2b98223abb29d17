package main

import (
	"os"

	"laundrylink-backend/config"
	"laundrylink-backend/controllers"
	"laundrylink-backend/models"
	"laundrylink-backend/routes"
	"laundrylink-backend/services"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	config.ConnectDB()
	config.ConnectRedis()

	config.DB.AutoMigrate(
		&models.Owner{},
		&models.Customer{},
		&models.Order{},
		&models.OwnerRating{},
		&models.Topup{},
		&models.NotificationLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	controllers.Notifier = services.NewNotificationService(config.DB)
	services.NewPlanExpiryService(config.DB).StartScheduler()

	r := routes.SetupRouter()
	logrus.Infof("Server running on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
