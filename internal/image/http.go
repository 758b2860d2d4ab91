package image

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickshare/api/internal/auth"
	"github.com/quickshare/api/internal/fault"
)

// RegisterRoutes mounts image operations under the provided group. All
// image routes require an authenticated session.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/images/upload-url", handler.uploadURL)
	group.POST("/images", handler.create)
	group.GET("/images", handler.listMine)
	group.GET("/images/:id", handler.getByID)
	group.DELETE("/images/:id", handler.deleteImage)
}

type httpHandler struct {
	service *Service
}

type uploadURLRequest struct {
	Key        string `json:"key" binding:"required"`
	TTLSeconds int    `json:"ttl_seconds" binding:"omitempty,min=1,max=3600"`
}

type createRequest struct {
	Key      string `json:"key" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

func (h *httpHandler) uploadURL(c *gin.Context) {
	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.UploadURL(c.Request.Context(), req.Key, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		writeError(c, err, "failed to generate upload url")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *httpHandler) create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.service.Create(c.Request.Context(), CreateInput{
		Key:      req.Key,
		Filename: req.Filename,
	}, user.ID)
	if err != nil {
		writeError(c, err, "failed to record image")
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *httpHandler) listMine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	images, err := h.service.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "failed to list images")
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *httpHandler) getByID(c *gin.Context) {
	img, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch image")
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *httpHandler) deleteImage(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete image")
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch fault.KindOf(err) {
	case fault.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case fault.KindValidationFailed:
		c.JSON(http.StatusBadRequest, gin.H{"error": fault.Message(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
