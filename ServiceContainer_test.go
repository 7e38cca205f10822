package main

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"
)

func TestBuildServiceContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	f, err := os.CreateTemp("", "db_*.db")
	assert.NoError(t, err)
	_ = f.Close()
	defer os.Remove(f.Name())

	config := LoadConfigFromEnv()
	config.DatabaseFilepath = f.Name()
	config.WebhookWorkers = 2

	serviceContainer, err := BuildServiceContainer(config, WallClock{})

	assert.NoError(t, err)

	// check database
	assert.NotNil(t, serviceContainer.Database)
	assert.IsType(t, &bbolt.DB{}, serviceContainer.Database)
	defer serviceContainer.Database.Close()

	// check expression executor
	assert.NotNil(t, serviceContainer.ExpressionExecutor)
	assert.IsType(t, &ExpressionExecutor{}, serviceContainer.ExpressionExecutor)

	// check workbook
	assert.NotNil(t, serviceContainer.Workbook)
	assert.Equal(t, serviceContainer.ExpressionExecutor, serviceContainer.Workbook.executor)

	// check webhook dispatcher
	assert.NotNil(t, serviceContainer.WebhookDispatcher)
	assert.IsType(t, &WebhookDispatcher{}, serviceContainer.WebhookDispatcher)
	assert.Equal(t, 2, serviceContainer.WebhookDispatcher.(*WebhookDispatcher).workersCount)

	// check sheet repository
	sheetRepository := serviceContainer.SheetRepository
	assert.NotNil(t, sheetRepository)
	assert.Equal(t, serviceContainer.Database, sheetRepository.db)
	assert.Equal(t, serviceContainer.Workbook, sheetRepository.workbook)
	assert.Equal(t, serviceContainer.WebhookDispatcher, sheetRepository.webhookDispatcher)
	assert.IsType(t, &CellBinarySerializer{}, sheetRepository.serializer)

	// check api controller
	assert.NotNil(t, serviceContainer.ApiController)
	assert.IsType(t, &ApiController{}, serviceContainer.ApiController)

	apiController := serviceContainer.ApiController.(*ApiController)
	assert.Equal(t, serviceContainer.SheetRepository, apiController.SheetRepository)
	assert.Equal(t, serviceContainer.WebhookDispatcher, apiController.WebhookDispatcher)

	// check router
	assert.NotNil(t, serviceContainer.Router)
	assert.IsType(t, &gin.Engine{}, serviceContainer.Router)

	// 6 api routes + health check
	assert.Len(t, serviceContainer.Router.Routes(), 7)
}
