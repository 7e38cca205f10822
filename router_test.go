package main

import (
	"net/http"
	"net/http/httptest"
	"spreadsheetPro/mocks"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	expectedApiRoutes := [][3]string{
		{http.MethodPost, "/sheet1/A1", "SetCellAction"},
		{http.MethodGet, "/sheet1/A1", "GetCellAction"},
		{http.MethodDelete, "/sheet1/A1", "ClearCellAction"},
		{http.MethodGet, "/sheet1", "GetSheetAction"},
		{http.MethodGet, "/sheet1/A1/" + dependentsPath, "GetDependentsAction"},
		{http.MethodPost, "/sheet1/A1/" + subscribePath, "SubscribeAction"},
	}

	for _, expectedRoute := range expectedApiRoutes {
		t.Run("Route "+expectedRoute[2], func(t *testing.T) {
			apiController := mocks.NewApiController(t)
			router := SetupRouter(apiController)

			apiController.On(expectedRoute[2], mock.Anything).Return()

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(expectedRoute[0], "/api/"+ApiVersion+expectedRoute[1], nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			apiController.AssertNumberOfCalls(t, expectedRoute[2], 1)
		})
	}

	t.Run("healthcheck", func(t *testing.T) {
		apiController := mocks.NewApiController(t)
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/healthcheck", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "health", w.Body.String())
	})

	t.Run("request_id", func(t *testing.T) {
		apiController := mocks.NewApiController(t)
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/healthcheck", nil)
		req.Header.Set(RequestIdHeader, "request-1")
		router.ServeHTTP(w, req)
		assert.Equal(t, "request-1", w.Header().Get(RequestIdHeader))

		w = httptest.NewRecorder()
		req, _ = http.NewRequest(http.MethodGet, "/healthcheck", nil)
		router.ServeHTTP(w, req)
		assert.NotEmpty(t, w.Header().Get(RequestIdHeader))
	})
}
