package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickshare/api/internal/fault"
)

// RegisterRoutes mounts authentication endpoints under /auth.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handler.register)
		authGroup.POST("/login", handler.login)
	}
}

type httpHandler struct {
	service *Service
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type sessionResponse struct {
	Account   interface{} `json:"account"`
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
}

func (h *httpHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Register(c.Request.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "failed to register account")
		return
	}

	c.JSON(http.StatusCreated, marshalSession(result))
}

func (h *httpHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err, "failed to authenticate")
		return
	}

	c.JSON(http.StatusOK, marshalSession(result))
}

func marshalSession(result Result) sessionResponse {
	return sessionResponse{
		Account:   result.Account,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Unix(),
	}
}

func writeError(c *gin.Context, err error, fallback string) {
	switch fault.KindOf(err) {
	case fault.KindValidationFailed:
		c.JSON(http.StatusBadRequest, gin.H{"error": fault.Message(err)})
	case fault.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": fault.Message(err)})
	case fault.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": fault.Message(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
