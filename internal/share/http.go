package share

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickshare/api/internal/auth"
	"github.com/quickshare/api/internal/fault"
)

// RegisterRoutes mounts the feed under the provided groups. Reading the
// feed is public; creating a share requires an authenticated session.
func RegisterRoutes(public, protected *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	public.GET("/quick-share", handler.listPage)
	public.GET("/quick-share/:id", handler.getByID)
	protected.POST("/quick-share", handler.create)
}

type httpHandler struct {
	service *Service
}

type createRequest struct {
	Title       string `json:"title" binding:"required,min=1"`
	Description string `json:"description" binding:"required,min=1"`
	ImageKey    string `json:"imageKey" binding:"omitempty"`
}

func (h *httpHandler) listPage(c *gin.Context) {
	page, err := h.service.ListPage(c.Request.Context(), c.Query("cursor"))
	if err != nil {
		if fault.KindOf(err) == fault.KindValidationFailed {
			c.JSON(http.StatusBadRequest, gin.H{"message": fault.Message(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": fault.Message(err)})
		return
	}

	var cursor interface{}
	if page.NextCursor != "" {
		cursor = page.NextCursor
	}

	c.JSON(http.StatusOK, gin.H{"items": page.Items, "cursor": cursor})
}

func (h *httpHandler) getByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if fault.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "share not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": fault.Message(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
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

	resp, err := h.service.Create(c.Request.Context(), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    req.ImageKey,
	}, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": fault.Message(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}
