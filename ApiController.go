package main

import (
	"errors"
	"net/http"
	"net/url"
	"spreadsheetPro/contracts"

	"github.com/gin-gonic/gin"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

// SetCellRequest value is a pointer so an empty string, which clears the cell, passes binding
type SetCellRequest struct {
	Value *string `json:"value" binding:"required"`
}

type SetCellResponse struct {
	Cell    *contracts.Cell   `json:"cell"`
	Updated []*contracts.Cell `json:"updated"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required"`
}

type SubscribeResponse struct {
	Id         string `json:"id"`
	Key        string `json:"key"`
	WebhookUrl string `json:"webhook_url"`
}

var InvalidWebhookUrlError = errors.New("webhook_url should be an absolute http or https url")

func NewApiController(sheetRepository contracts.SheetRepository, webhookDispatcher contracts.WebhookDispatcher) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
	}
}

// errorStatus maps repository errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, contracts.CellNotFoundError), errors.Is(err, contracts.SheetNotFoundError):
		return http.StatusNotFound
	case errors.Is(err, contracts.InvalidCellIdError), errors.Is(err, contracts.InvalidSheetIdError),
		errors.Is(err, InvalidWebhookUrlError):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(c.Request.Context(), params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	response := SetCellResponse{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	// malformed requests and ids are unprocessable, anything else failed in storage
	status := http.StatusUnprocessableEntity
	if err == nil {
		response.Cell, response.Updated, err = api.SheetRepository.SetCell(c.Request.Context(), params.SheetId, params.CellId, *request.Value)
		if err != nil && errorStatus(err) == http.StatusInternalServerError {
			status = http.StatusInternalServerError
		}
	}

	if err != nil {
		if response.Cell == nil {
			response.Cell = &contracts.Cell{}
		}
		if request.Value != nil {
			response.Cell.Value = *request.Value
		}
		response.Cell.Result = err.Error()
		c.JSON(status, response)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) ClearCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	response := SetCellResponse{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		response.Cell, response.Updated, err = api.SheetRepository.ClearCell(c.Request.Context(), params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	response := &contracts.CellList{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCellList(c.Request.Context(), params.SheetId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) GetDependentsAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Dependents

	err := c.ShouldBindUri(&params)
	if err == nil {
		response, err = api.SheetRepository.GetDependents(c.Request.Context(), params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}
	response := SubscribeResponse{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		err = validateWebhookUrl(request.WebhookUrl)
	}

	if err == nil {
		response.Key, err = api.SheetRepository.CellKey(params.SheetId, params.CellId)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response.WebhookUrl = request.WebhookUrl
	response.Id = api.WebhookDispatcher.SetWebhookUrl(response.Key, request.WebhookUrl)
	c.JSON(http.StatusCreated, response)
}

func validateWebhookUrl(webhookUrl string) error {
	parsed, err := url.ParseRequestURI(webhookUrl)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return InvalidWebhookUrlError
	}
	return nil
}
