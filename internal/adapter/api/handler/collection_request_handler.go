package handler

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/domain/entity"
	"recyclemart/internal/usecase"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/response"
	"recyclemart/pkg/utils"
)

type CollectionRequestHandler struct {
	requestUseCase *usecase.CollectionRequestUseCase
}

func NewCollectionRequestHandler(requestUseCase *usecase.CollectionRequestUseCase) *CollectionRequestHandler {
	return &CollectionRequestHandler{
		requestUseCase: requestUseCase,
	}
}

type submitRequestRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Address string `json:"address" validate:"max=500"`
	Phone   string `json:"phone" validate:"max=30"`
}

type acceptRequestRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Phone string `json:"phone" validate:"max=30"`
}

type rejectRequestRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Submit validates presence of address and phone in the use case so the
// caller gets INCOMPLETE_PROFILE rather than a generic validation error.
func (h *CollectionRequestHandler) Submit(c echo.Context) error {
	var req submitRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.Submit(c.Request().Context(), userID(c), entity.RequesterInfo{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

func (h *CollectionRequestHandler) ListMine(c echo.Context) error {
	status, err := statusParam(c, "")
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	requests, total, err := h.requestUseCase.ListForRequester(c.Request().Context(), userID(c), status, pagination)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *CollectionRequestHandler) GetRequest(c echo.Context) error {
	request, err := h.requestUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}

// ListInbox is the collector view of requests by status, pending by default.
func (h *CollectionRequestHandler) ListInbox(c echo.Context) error {
	status, err := statusParam(c, entity.StatusPending)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	requests, total, err := h.requestUseCase.ListByStatus(c.Request().Context(), status, pagination)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *CollectionRequestHandler) ListAssigned(c echo.Context) error {
	status, err := statusParam(c, "")
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	requests, total, err := h.requestUseCase.ListForCollector(c.Request().Context(), userID(c), status, pagination)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *CollectionRequestHandler) Accept(c echo.Context) error {
	var req acceptRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.Accept(c.Request().Context(), c.Param("id"), usecase.CollectorInput{
		ID:    userID(c),
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}

func (h *CollectionRequestHandler) Reject(c echo.Context) error {
	var req rejectRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.Reject(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}

func (h *CollectionRequestHandler) StartProgress(c echo.Context) error {
	request, err := h.requestUseCase.StartProgress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}

func (h *CollectionRequestHandler) Complete(c echo.Context) error {
	request, err := h.requestUseCase.Complete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}

func statusParam(c echo.Context, fallback entity.RequestStatus) (entity.RequestStatus, error) {
	raw := c.QueryParam("status")
	if raw == "" {
		return fallback, nil
	}
	if raw == "all" {
		return "", nil
	}

	status, ok := entity.ParseRequestStatus(raw)
	if !ok {
		return "", errors.BadRequest("Invalid status value", nil)
	}
	return status, nil
}
