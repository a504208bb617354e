package serverutils

import (
	"strings"

	"campus-chatbot-be/internal/config"
	"campus-chatbot-be/internal/pkg/logger"
	"campus-chatbot-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const guestPrefix = "guest-"

// EmailDomainGuard gates the history routes on the configured email
// domain policy. The check runs before any store operation: a bearer
// token from the hosted auth provider is preferred, otherwise the user
// profile row is consulted. Guest identities skip the check entirely
// when guest mode is on.
func EmailDomainGuard(cfg config.AuthConfig, uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId := extractUserId(ctx)
		if userId == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "User ID is required"))
		}
		ctx.Locals("user_id", userId)

		if cfg.AllowGuests && strings.HasPrefix(userId, guestPrefix) {
			return ctx.Next()
		}

		// Guest-mode deployment: no domain configured, nothing to enforce.
		if cfg.AllowedEmailDomain == "" {
			return ctx.Next()
		}

		email, err := resolveEmail(ctx, cfg, uowFactory, userId)
		if err != nil {
			sysLogger.Warn("auth", "identity resolution failed", map[string]interface{}{"user_id": userId, "error": err.Error()})
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "User not found"))
		}
		if email == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "User not found"))
		}

		if !strings.HasSuffix(email, "@"+cfg.AllowedEmailDomain) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden,
				"Access denied. Only @"+cfg.AllowedEmailDomain+" email addresses are allowed."))
		}

		ctx.Locals("user_email", email)
		return ctx.Next()
	}
}

func extractUserId(ctx *fiber.Ctx) string {
	if userId := ctx.Query("userId"); userId != "" {
		return userId
	}

	var body struct {
		UserId string `json:"userId"`
	}
	if err := ctx.BodyParser(&body); err == nil {
		return body.UserId
	}
	return ""
}

func resolveEmail(ctx *fiber.Ctx, cfg config.AuthConfig, uowFactory unitofwork.RepositoryFactory, userId string) (string, error) {
	// Prefer the auth provider's own token when the client sends one.
	authHeader := ctx.Get("Authorization")
	if cfg.JWTSecret != "" && strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr := authHeader[7:]
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				sub, _ := claims["sub"].(string)
				email, _ := claims["email"].(string)
				if sub == userId && email != "" {
					return email, nil
				}
			}
		}
		// Fall through to the profile lookup on any token mismatch.
	}

	uow := uowFactory.NewUnitOfWork(ctx.Context())
	profile, err := uow.UserProfileRepository().FindById(ctx.Context(), userId)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", nil
	}
	return profile.Email, nil
}
