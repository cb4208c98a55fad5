package controllers

import (
	"net/http"

	"motogear-backend/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error kind to an HTTP status code. The InUse kind
// maps to 500 on purpose: the storefront surfaces blocked deletes as a server
// failure with a specific message rather than a client error.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound, services.KindParentNotFound:
		return http.StatusNotFound
	case services.KindConflict, services.KindDuplicateCode:
		return http.StatusConflict
	case services.KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, svcErr *services.ServiceError) {
	body := gin.H{"error": svcErr.Message}
	if svcErr.Code != "" {
		body["productCode"] = svcErr.Code
	}
	c.JSON(statusFor(svcErr.Kind), body)
}
