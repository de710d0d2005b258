package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dorincreciun/Server-Pizza/internal/service"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// Error is the single place a service failure becomes a transport status.
func Error(c *gin.Context, err error) {
	se := service.AsError(err)
	if se.Kind == service.KindInternal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(se.HTTPStatus(), gin.H{"error": errorBody{
		Code:    se.Code,
		Message: se.Message,
		Details: se.Details,
	}})
}

// BindJSON decodes and validates a request body, turning validator failures
// into field-level details.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, service.NewValidation("Invalid request body", bindingDetails(err)))
		return false
	}
	return true
}

func bindingDetails(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {err.Error()}}
	}
	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		details[field] = append(details[field], "failed on the '"+fe.Tag()+"' rule")
	}
	return details
}
