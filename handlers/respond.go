package handlers

import (
	"errors"
	"net/http"

	"feedboard/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// fail is the single boundary turning errors into JSON responses.
// Unclassified errors become a 500 without leaking their cause.
func fail(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.Internal {
			log.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		body := gin.H{"message": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.Status(), body)
		return
	}

	log.Errorf("unclassified error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
}

// bindingError converts a gin binding failure into a validation error
// carrying field-level issues.
func bindingError(err error) *apperror.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperror.FieldError{
				Field:   fe.Field(),
				Message: "failed validation on '" + fe.Tag() + "'",
			})
		}
		return apperror.WithDetails("Validation failed, entered data is incorrect.", details)
	}
	return apperror.Wrap(apperror.Validation, "Validation failed, entered data is incorrect.", err)
}
