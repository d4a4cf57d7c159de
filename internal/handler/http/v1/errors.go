package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/raynet_coordinator/internal/apperr"
	"github.com/sirupsen/logrus"
)

// respondError пишет ошибку ядра в формате {error, code, retryable}
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()
	if status >= 500 {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     apperr.Message(err),
		Code:      string(kind),
		Retryable: kind.Retryable(),
	})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(apperr.KindValidation.HTTPStatus(), ErrorResponse{
		Error: message,
		Code:  string(apperr.KindValidation),
	})
}
