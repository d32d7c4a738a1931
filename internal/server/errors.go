package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/dentalpay/internal/analytics/domain"
	contactdomain "github.com/smallbiznis/dentalpay/internal/contact/domain"
	ledgerdomain "github.com/smallbiznis/dentalpay/internal/emailledger/domain"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

// errorResponse keeps "error" a plain string so existing clients can read it directly.
type errorResponse struct {
	Error  string            `json:"error"`
	Type   string            `json:"type"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

var validationSentinels = []error{
	ErrInvalidRequest,
	salarydomain.ErrInvalidSpecialty,
	salarydomain.ErrInvalidState,
	salarydomain.ErrInvalidPracticeSetting,
	salarydomain.ErrInvalidBaseSalary,
	salarydomain.ErrInvalidBonus,
	salarydomain.ErrInvalidHoursWorked,
	salarydomain.ErrInvalidPTOWeeks,
	salarydomain.ErrInvalidSatisfaction,
	salarydomain.ErrInvalidChooseAgain,
	salarydomain.ErrInvalidYearsOfExperience,
	salarydomain.ErrInvalidRating,
	salarydomain.ErrInvalidEmail,
	salarydomain.ErrInvalidSalaryRange,
	analyticsdomain.ErrInvalidSpecialty,
	analyticsdomain.ErrInvalidAmount,
	ledgerdomain.ErrInvalidEmail,
	contactdomain.ErrInvalidName,
	contactdomain.ErrInvalidEmail,
	contactdomain.ErrInvalidCategory,
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// bindError turns a JSON decoding failure into a field-level validation error where possible.
func bindError(err error) error {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		return newValidationError(field, "invalid_"+field, "invalid "+field)
	}
	return invalidRequestError()
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{
			Type:  "internal_error",
			Error: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		msg := "validation error"
		if len(vErr.Errors) > 0 {
			msg = vErr.Errors[0].Message
		}
		return http.StatusBadRequest, errorResponse{
			Type:   "validation_error",
			Error:  msg,
			Errors: vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		field := validationErrorField(code)
		msg := validationErrorMessage(code, field)
		return http.StatusBadRequest, errorResponse{
			Type:  "validation_error",
			Error: msg,
			Errors: []ValidationError{
				{
					Field:   field,
					Code:    code,
					Message: msg,
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorResponse{
			Type:  "not_found",
			Error: "not found",
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			Type:  "internal_error",
			Error: "internal server error",
		}
	}
}

// classifyErrorForLog reports the error type and code recorded on request log lines.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	if len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	return payload.Type, payload.Type
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func validationErrorCode(err error) string {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code, field string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_salary_range":
		return "minSalary must not exceed maxSalary"
	default:
		if field == "" {
			return "invalid value"
		}
		return "invalid " + field
	}
}
