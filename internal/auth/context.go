package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claim set the external identity provider puts in its
// tokens. Sub is the opaque user id; the rest seed the first-login upsert.
type Identity struct {
	Sub       string
	Email     string
	FirstName string
	LastName  string
}

// UserID extracts the authenticated subject from JWT claims in context.
func UserID(c *fiber.Ctx) (string, error) {
	id, err := FromContext(c)
	if err != nil {
		return "", err
	}
	return id.Sub, nil
}

// FromContext extracts the full identity claim set from JWT claims in
// context.
func FromContext(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing sub claim")
	}

	id := &Identity{Sub: sub}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["given_name"].(string); ok {
		id.FirstName = v
	}
	if v, ok := claims["family_name"].(string); ok {
		id.LastName = v
	}
	return id, nil
}
