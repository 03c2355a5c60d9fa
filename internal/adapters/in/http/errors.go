package http

import (
	"net/http"

	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code" example:"409"`
	Kind    string `json:"kind" example:"illegal_status_transition"`
	Message string `json:"message" example:"illegal status transition: CANCELLED -> SHIPPED"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindValidation:              http.StatusBadRequest,
	errs.KindInvalidQuantity:         http.StatusUnprocessableEntity,
	errs.KindInvalidPricing:          http.StatusUnprocessableEntity,
	errs.KindNotFound:                http.StatusNotFound,
	errs.KindIllegalStatusTransition: http.StatusConflict,
	errs.KindConcurrentModification:  http.StatusConflict,
	errs.KindGenerationExhausted:     http.StatusServiceUnavailable,
	errs.KindOrderCreationTimeout:    http.StatusGatewayTimeout,
	errs.KindUpstreamUnavailable:     http.StatusBadGateway,
	errs.KindInternal:                http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if status, ok := kindStatus[errs.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) respondError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := StatusOf(err)
	message := err.Error()

	if kind == errs.KindInternal {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		message = http.StatusText(status)
	}

	return c.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    string(kind),
		Message: message,
	})
}
