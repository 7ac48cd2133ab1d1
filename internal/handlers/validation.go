package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/scentbase/perfume-catalog-api/internal/errors"
)

// respondBindingError turns a ShouldBind failure into a 400 response.
// Validator failures carry a field-to-message map so clients see every
// failing field at once; anything else reads as a malformed body.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			errorMessages[fieldPath(fieldErr)] = validationMessage(fieldErr)
		}
		apierrors.BadRequestWithDetails(c, "Validation failed", errorMessages)
		return
	}

	apierrors.BadRequest(c, "Invalid request body")
}

// respondFieldError reports a single-field validation failure in the same
// shape respondBindingError uses.
func respondFieldError(c *gin.Context, field, message string) {
	apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{field: message})
}

// fieldPath strips the request struct name from the namespace, leaving
// paths like "title" or "notes[2].name".
func fieldPath(fieldErr validator.FieldError) string {
	parts := strings.SplitN(fieldErr.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fieldErr.Field()
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fieldErr.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fieldErr.Tag())
	}
}
