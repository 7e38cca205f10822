package main

import (
	"spreadsheetPro/contracts"
	"time"

	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"
)

type ServiceContainer struct {
	Database           *bbolt.DB
	ExpressionExecutor contracts.ExpressionExecutor
	Workbook           *Workbook
	SheetRepository    *SheetRepository
	WebhookDispatcher  contracts.WebhookDispatcher
	ApiController      contracts.ApiController
	Router             *gin.Engine
}

func BuildServiceContainer(config Config, clock contracts.Clock) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(config.DatabaseFilepath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return
	}

	serializer := NewCellBinarySerializer()

	container.ExpressionExecutor = NewExpressionExecutor(clock)
	container.Workbook = NewWorkbook(container.ExpressionExecutor)
	container.WebhookDispatcher = NewWebhookDispatcher(config.WebhookWorkers)
	container.SheetRepository = NewSheetRepository(container.Database, container.Workbook, serializer, container.WebhookDispatcher)
	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher)

	container.Router = SetupRouter(container.ApiController)

	return
}
