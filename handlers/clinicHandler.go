package handlers

import (
	"DentaBill/models"
	"DentaBill/services"
	"DentaBill/storage"
	"errors"

	"github.com/gin-gonic/gin"
)

type ClinicHandler struct {
	service *services.ClinicService
}

func NewClinicHandler(service *services.ClinicService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

// GetProfile returns the clinic's branding profile, or an empty object when
// none has been saved yet.
func (h *ClinicHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(200, gin.H{})
		return
	}
	c.JSON(200, profile)
}

func (h *ClinicHandler) SaveProfile(c *gin.Context) {
	var profile models.ClinicProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SaveProfile(c.Request.Context(), &profile); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, profile)
}

// UploadAsset accepts a multipart logo or signature image and returns its
// stored URL.
func (h *ClinicHandler) UploadAsset(c *gin.Context) {
	assetType := c.Param("asset_type")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadAsset(
		c.Request.Context(),
		assetType,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAssetType) || storage.ValidateAssetSize(header.Size) != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

func (h *ClinicHandler) DeleteAsset(c *gin.Context) {
	assetType := c.Param("asset_type")
	if err := h.service.DeleteAsset(c.Request.Context(), assetType); err != nil {
		if errors.Is(err, services.ErrUnknownAssetType) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Asset removed"})
}
