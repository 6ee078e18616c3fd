package utils

import (
	"sync"

	"thru-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps go-playground/validator for handler use.
type CustomValidator struct {
	validate *validator.Validate
}

// Validate runs struct tag validation on the given value.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

var (
	validatorOnce     sync.Once
	validatorInstance *CustomValidator
)

// GetValidator returns the shared request validator.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		validatorInstance = &CustomValidator{validate: validator.New()}
	})
	return validatorInstance
}

// RespondWithError writes a JSON error body with the given status.
func RespondWithError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{Message: message})
}

// RespondWithJSON writes a JSON response with the given status.
func RespondWithJSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}
