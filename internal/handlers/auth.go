package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BasicAuth returns a middleware that checks HTTP Basic Auth credentials.
func BasicAuth(login, password string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Basic ") {
			return unauthorized(c)
		}

		decoded, err := base64.StdEncoding.DecodeString(auth[len("Basic "):])
		if err != nil {
			return unauthorized(c)
		}

		user, pass, ok := strings.Cut(string(decoded), ":")
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(login)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(password)) != 1 {
			return unauthorized(c)
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", `Basic realm="esp-monitor"`)
	return c.SendStatus(fiber.StatusUnauthorized)
}
