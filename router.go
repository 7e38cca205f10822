package main

import (
	"net/http"
	"spreadsheetPro/contracts"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.alis.build/alog"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"
const dependentsPath = "dependents"

const RequestIdHeader = "X-Request-Id"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id/"+dependentsPath, controller.GetDependentsAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.DELETE("/:sheet_id/:cell_id", controller.ClearCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}

// requestLogger tags every request with an id, reusing the one sent by the client
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(RequestIdHeader, requestId)

		start := time.Now()
		c.Next()

		alog.Debugf(c.Request.Context(), "%s %s %d %s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestId)
	}
}
