// Package middleware provides HTTP middleware components for the dashboard.
package middleware

import (
	"errors"
	"strings"

	"challenz/internal/models"
	"challenz/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// StaffAuth validates staff bearer tokens issued by the platform's auth
// service. With an empty secret the dashboard runs open, which is how it
// is deployed behind the internal VPN.
type StaffAuth struct {
	secret []byte
	log    *logrus.Entry
}

func NewStaffAuth(secret string, logger *logrus.Logger) *StaffAuth {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &StaffAuth{
		secret: []byte(secret),
		log:    logger.WithField("component", "auth"),
	}
}

// Enabled reports whether tokens are checked at all.
func (m *StaffAuth) Enabled() bool {
	return len(m.secret) > 0
}

// Handler checks the Authorization header and stores the staff claims in
// the request context.
func (m *StaffAuth) Handler(c *fiber.Ctx) error {
	if !m.Enabled() {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return response.Unauthorized(c, "session expired")
		}
		m.log.WithError(err).Debug("token validation failed")
		return response.Unauthorized(c, "invalid token")
	}

	if !claims.IsStaff() {
		m.log.WithFields(logrus.Fields{
			"user_id": claims.UserID,
			"role":    claims.Role,
		}).Warn("non-staff token rejected")
		return response.Forbidden(c, "Insufficient permissions")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
// It passes through when no claims were attached because auth is disabled.
func (m *StaffAuth) HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.Enabled() {
			return c.Next()
		}
		claims, ok := c.Locals("claims").(*models.StaffClaims)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !claims.HasPermission(permission) {
			return response.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}
