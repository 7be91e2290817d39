package httpserver

import (
	"adherence-srv/internal/middleware"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "adherence-srv/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const InternalApi = "/internal/api/v1"

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(srv.logger, srv.discord))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Manual detector triggers, service-token guarded
	internal := srv.gin.Group(InternalApi)
	internal.Use(middleware.ServiceAuth(srv.verifier))
	{
		internal.POST("/detectors/missed-dose/run", srv.runMissedDose)
		internal.POST("/detectors/low-stock/run", srv.runLowStock)
		internal.POST("/detectors/low-stock/check/:medicationID", srv.runLowStockCheck)
		internal.POST("/detectors/weekly-digest/run", srv.runWeeklyDigest)
	}
}
