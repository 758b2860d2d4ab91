package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickshare/api/internal/auth/authctx"
	"github.com/quickshare/api/internal/fault"
)

// RegisterRoutes mounts account endpoints under the provided group.
func RegisterRoutes(protected *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	protected.GET("/me", handler.me)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) me(c *gin.Context) {
	user, ok := authctx.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), user.ID)
	if err != nil {
		if fault.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch account"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
