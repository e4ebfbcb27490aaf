package handler

import (
	"github.com/labstack/echo/v4"

	"recyclemart/internal/usecase"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/response"
)

type QueueHandler struct {
	queueUseCase *usecase.QueueUseCase
}

func NewQueueHandler(queueUseCase *usecase.QueueUseCase) *QueueHandler {
	return &QueueHandler{
		queueUseCase: queueUseCase,
	}
}

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type addCustomItemRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type updateQuantityRequest struct {
	Quantity *float64 `json:"quantity" validate:"required"`
}

func (h *QueueHandler) GetQueue(c echo.Context) error {
	queue, err := h.queueUseCase.GetQueue(c.Request().Context(), userID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, queue)
}

// AddItem answers 201 for a new entry. An item already queued answers 200
// with duplicate=true and a DUPLICATE_ENTRY notice.
func (h *QueueHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.queueUseCase.AddItem(c.Request().Context(), userID(c), req.ItemID)
	if err != nil {
		return response.Error(c, err)
	}

	if result.Duplicate {
		return response.Notice(c, result, errors.DuplicateEntry(result.Entry.ItemID))
	}
	return response.Created(c, result)
}

func (h *QueueHandler) AddCustomItem(c echo.Context) error {
	var req addCustomItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.queueUseCase.AddCustomItem(c.Request().Context(), userID(c), usecase.CustomItemInput{
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if result.Duplicate {
		return response.Notice(c, result, errors.DuplicateEntry(result.Entry.ItemID))
	}
	return response.Created(c, result)
}

func (h *QueueHandler) UpdateQuantity(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	entry, err := h.queueUseCase.UpdateQuantity(c.Request().Context(), userID(c), itemID, *req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entry)
}

func (h *QueueHandler) RemoveItem(c echo.Context) error {
	queue, err := h.queueUseCase.RemoveItem(c.Request().Context(), userID(c), c.Param("itemId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, queue)
}
