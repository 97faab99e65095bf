package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/birat04/Notionize/internal/dto"
	"github.com/birat04/Notionize/internal/obs"
	"github.com/birat04/Notionize/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report json field names in validation errors.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// writeError maps service errors to a status and JSON body. notFound is the
// message used for service.ErrNotFound.
func writeError(c *gin.Context, err error, notFound string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		details := make([]dto.FieldDetail, len(ve.Fields))
		for i, f := range ve.Fields {
			details[i] = dto.FieldDetail{Field: f.Field, Message: f.Message}
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation error", Details: details})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFound})
	default:
		log.Printf("request %s %s failed (request_id=%s): %v",
			c.Request.Method, c.FullPath(), obs.RequestIDFromContext(c), err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

// writeBindError reports a request body that failed to decode or validate.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	details := make([]dto.FieldDetail, len(verrs))
	for i, fe := range verrs {
		details[i] = dto.FieldDetail{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation error", Details: details})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}

// parseID reads a positive integer path parameter. Anything else is treated
// as a missing resource.
func parseID(c *gin.Context, name, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFound})
		return 0, false
	}
	return id, true
}
