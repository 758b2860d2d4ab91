package server

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"github.com/quickshare/api/internal/account"
	"github.com/quickshare/api/internal/auth"
	"github.com/quickshare/api/internal/config"
	"github.com/quickshare/api/internal/image"
	"github.com/quickshare/api/internal/metrics"
	"github.com/quickshare/api/internal/share"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config         config.Config
	Dynamo         *dynamodb.Client
	ObjectStore    *minio.Client
	AuthService    *auth.Service
	AccountService *account.Service
	ShareService   *share.Service
	ImageService   *image.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.AuthService != nil {
		auth.RegisterRoutes(api, deps.AuthService)

		protected := api.Group("/")
		protected.Use(auth.Middleware(deps.AuthService))

		if deps.ShareService != nil {
			share.RegisterRoutes(api, protected, deps.ShareService)
		}
		if deps.AccountService != nil {
			account.RegisterRoutes(protected, deps.AccountService)
		}
		if deps.ImageService != nil {
			image.RegisterRoutes(protected, deps.ImageService)
		}
	}

	return router
}
