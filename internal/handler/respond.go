package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/middleware"
	"github.com/vidstreamhq/vidstream/internal/model"
)

// bindJSON binds and validates the request body. On failure it writes a
// 400 with per-field violations and returns false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
			Fields:  fieldViolations(err),
		})
		return false
	}
	return true
}

// fieldViolations translates validator errors into the structured violation
// list; non-validator errors yield nil.
func fieldViolations(err error) []model.FieldViolation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	violations := make([]model.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, model.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
	}
}

// respondError maps a domain error to its transport status
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), model.ErrorResponse{Error: err.Error()})
}

// pathUUID parses a uuid path parameter; writes a 400 and returns false on
// malformed input.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.CtxUserID).(uuid.UUID)
}
