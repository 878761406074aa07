// Package middleware bundles the cross-cutting fiber handlers the server
// installs before routing.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Logging returns the request-logging middleware.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	})
}

// Recovery converts handler panics into 500 responses so one bad
// request cannot take the process down.
func Recovery() fiber.Handler {
	return recover.New()
}
