package controllers

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"laundrylink-backend/config"
	"laundrylink-backend/models"
	"laundrylink-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const laundryListCacheKey = "laundries:all"

// LaundrySummary is the public view of an owner's laundry.
type LaundrySummary struct {
	ID          uuid.UUID `json:"id"`
	LaundryName string    `json:"laundry_name"`
	Address     string    `json:"address"`
	PhotoURL    string    `json:"photo_url"`
	Rating      float64   `json:"rating"`
}

type UpdateLaundryInput struct {
	LaundryName *string `json:"laundry_name" binding:"omitempty,min=2"`
	Address     *string `json:"address" binding:"omitempty,min=3"`
}

// UploadDir returns the directory for uploaded laundry photos.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// ListLaundries returns all laundries ordered by name. Public.
func ListLaundries(c *gin.Context) {
	ctx := context.Background()

	var laundries []LaundrySummary
	if found, err := utils.GetCache(ctx, config.RDB, laundryListCacheKey, &laundries); err == nil && found {
		c.JSON(http.StatusOK, laundries)
		return
	}

	if err := config.DB.Model(&models.Owner{}).
		Order("laundry_name ASC").
		Find(&laundries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve laundries")
		return
	}

	_ = utils.SetCache(ctx, config.RDB, laundryListCacheKey, laundries, 60*time.Second)
	c.JSON(http.StatusOK, laundries)
}

// GetLaundry returns one laundry by id. Public.
func GetLaundry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid laundry ID format")
		return
	}

	var laundry LaundrySummary
	if err := config.DB.Model(&models.Owner{}).
		Where("id = ?", id).
		First(&laundry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Laundry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, laundry)
}

// UpdateMyLaundry partially updates the caller's laundry profile.
func UpdateMyLaundry(c *gin.Context) {
	ownerID := c.GetString("userId")

	var input UpdateLaundryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var owner models.Owner
	if err := config.DB.First(&owner, "id = ?", ownerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Laundry not found")
		return
	}

	if input.LaundryName != nil {
		owner.LaundryName = *input.LaundryName
	}
	if input.Address != nil {
		owner.Address = *input.Address
	}

	if err := config.DB.Save(&owner).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update laundry")
		return
	}

	_ = utils.DeleteCache(context.Background(), config.RDB, laundryListCacheKey)

	c.JSON(http.StatusOK, LaundrySummary{
		ID:          owner.ID,
		LaundryName: owner.LaundryName,
		Address:     owner.Address,
		PhotoURL:    owner.PhotoURL,
		Rating:      owner.Rating,
	})
}

// UploadLaundryPhoto stores a multipart photo and points the caller's
// profile at the served path.
func UploadLaundryPhoto(c *gin.Context) {
	ownerID := c.GetString("userId")

	file, err := c.FormFile("foto")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Photo file required")
		return
	}

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	urlPath := "/uploads/" + filename
	var owner models.Owner
	if err := config.DB.First(&owner, "id = ?", ownerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Laundry not found")
		return
	}

	if err := config.DB.Model(&owner).Update("photo_url", urlPath).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update photo")
		return
	}

	_ = utils.DeleteCache(context.Background(), config.RDB, laundryListCacheKey)

	c.JSON(http.StatusOK, LaundrySummary{
		ID:          owner.ID,
		LaundryName: owner.LaundryName,
		Address:     owner.Address,
		PhotoURL:    urlPath,
		Rating:      owner.Rating,
	})
}

// DeleteMyLaundry removes the caller's account; orders, ratings and topups
// cascade.
func DeleteMyLaundry(c *gin.Context) {
	ownerID := c.GetString("userId")

	result := config.DB.Delete(&models.Owner{}, "id = ?", ownerID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Laundry not found")
		return
	}

	logrus.WithField("owner_id", ownerID).Info("owner account deleted")
	_ = utils.DeleteCache(context.Background(), config.RDB, laundryListCacheKey)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
