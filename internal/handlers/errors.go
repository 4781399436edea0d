package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = apperr.Validation("Invalid request body")

// RespondError writes err as {"error":true,"message":...}. Server-side
// failures are logged and reported to Sentry; their details never reach
// the caller.
func RespondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: true, Message: fe.Message})
		}
		err = apperr.Internal(fe.Message, fe)
	}

	status := apperr.Status(apperr.KindOf(err))
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Message: apperr.PublicMessage(err),
	})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validationf("invalid %s", param)
	}
	return uint(id), nil
}

func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperr.Validationf("invalid %s", key)
	}
	id := uint(v)
	return &id, nil
}

func requiredQueryUint(c *fiber.Ctx, key string) (uint, error) {
	v, err := queryUint(c, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, apperr.Validationf("%s is required", key)
	}
	return *v, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validationf("invalid %s", key)
	}
	return &v, nil
}
