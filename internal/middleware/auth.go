package middleware

import (
	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalAuthScheme  = "auth_scheme"
	LocalAuthSubject = "auth_subject"
	LocalToken       = "user"
)

// JWTProtected accepts bearer tokens only. The parsed token is stored in
// c.Locals("user").
func JWTProtected(authService *services.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: authService.Algorithm(),
			Key:    authService.Secret(),
		},
		ContextKey: LocalToken,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, services.ErrInvalidToken.Message)
		},
	})
}

// Authenticated accepts either an X-API-Key header or a bearer token.
func Authenticated(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := authService.Authenticate(c.Get("X-API-Key"), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(c, apperr.PublicMessage(err))
		}
		c.Locals(LocalAuthScheme, string(result.Scheme))
		c.Locals(LocalAuthSubject, result.Subject)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return respond(c, apperr.Unauthorized(message))
}

// respond writes err in the shared error body with the status of its kind.
func respond(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(apperr.KindOf(err))).JSON(dto.ErrorResponse{
		Error:   true,
		Message: apperr.PublicMessage(err),
	})
}
