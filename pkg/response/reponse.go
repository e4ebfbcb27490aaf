package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

// CodeValidation marks request bodies rejected by struct validation.
const CodeValidation = "VALIDATION_ERROR"

// Response is the envelope of every JSON answer. A successful response may
// still carry Error as a notice, e.g. a duplicate queue add.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func send(c echo.Context, status int, data interface{}, info *ErrorInfo) error {
	return c.JSON(status, Response{
		Success:   status < http.StatusBadRequest,
		Data:      data,
		Error:     info,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func Success(c echo.Context, data interface{}) error {
	return send(c, http.StatusOK, data, nil)
}

func Created(c echo.Context, data interface{}) error {
	return send(c, http.StatusCreated, data, nil)
}

// Notice answers 200 with data and the code of a non-fatal outcome.
func Notice(c echo.Context, data interface{}, notice *apperrors.AppError) error {
	return send(c, http.StatusOK, data, &ErrorInfo{Code: notice.Code, Message: notice.Message})
}

func Paginated(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return send(c, http.StatusOK, PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil)
}

// Error maps validator errors, AppErrors and echo HTTP errors to the
// envelope. Anything else is reported as an internal error.
func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		details := make([]string, 0, len(validationErr))
		for _, fe := range validationErr {
			details = append(details, validationMessage(fe))
		}

		message := "Invalid input data"
		if len(details) > 0 {
			message = details[0]
		}
		return send(c, http.StatusBadRequest, nil, &ErrorInfo{Code: CodeValidation, Message: message, Details: details})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
		}
		return send(c, appErr.Status, nil, &ErrorInfo{Code: appErr.Code, Message: appErr.Message})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return send(c, httpErr.Code, nil, &ErrorInfo{Code: apperrors.CodeBadRequest, Message: http.StatusText(httpErr.Code)})
	}

	logger.Error("%s %s: unexpected error: %v", c.Request().Method, c.Path(), err)
	return send(c, http.StatusInternalServerError, nil, &ErrorInfo{
		Code:    apperrors.CodeInternal,
		Message: "An unexpected error occurred",
	})
}

func validationMessage(err validator.FieldError) string {
	field := strings.ToLower(err.Field())
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return field + " must be at least " + param
	case "max", "lte":
		return field + " must be at most " + param
	case "oneof":
		return field + " must be one of: " + param
	default:
		return field + " is invalid"
	}
}
