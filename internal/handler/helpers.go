package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/learnify-app/learnify-api/internal/utils"
)

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func parseQueryBool(c *fiber.Ctx, key string) (*bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &parsed, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

// validationDetails expands validator errors into itemized field violations
// suitable for the response envelope.
func validationDetails(errs validator.ValidationErrors) []utils.FieldError {
	details := make([]utils.FieldError, 0, len(errs))
	for _, fieldErr := range errs {
		field := strings.ToLower(fieldErr.Field())
		detail := utils.FieldError{
			Field: field,
			Rule:  fieldErr.Tag(),
		}

		switch fieldErr.Tag() {
		case "required":
			detail.Message = fmt.Sprintf("%s is required", field)
		case "oneof":
			detail.Message = fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
		case "gte":
			detail.Message = fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
		case "lte":
			detail.Message = fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
		case "url":
			detail.Message = fmt.Sprintf("%s must be a valid URL", field)
		case "max":
			detail.Message = fmt.Sprintf("%s must not exceed %s characters", field, fieldErr.Param())
		default:
			detail.Message = fmt.Sprintf("%s failed validation on %s", field, fieldErr.Tag())
		}

		details = append(details, detail)
	}

	return details
}
