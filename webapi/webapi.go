// Package webapi exposes the back office over HTTP. Handlers are organized
// into sub-packages per resource:
//   - account: banking account endpoints
//   - transaction: ledger movements and history of an account
//   - client: client directory and adherents
//   - report: PDF and spreadsheet downloads
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/bankoffice/pkg/app"
	accountweb "github.com/amirasaad/bankoffice/webapi/account"
	clientweb "github.com/amirasaad/bankoffice/webapi/client"
	"github.com/amirasaad/bankoffice/webapi/common"
	reportweb "github.com/amirasaad/bankoffice/webapi/report"
	transactionweb "github.com/amirasaad/bankoffice/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "Bank Office API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.HandlerDefault)

	if rl := app.Config.RateLimit; rl != nil && rl.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          rl.MaxRequests,
			Expiration:   rl.Window,
			KeyGenerator: clientIP,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(app.Deps.Metrics.Middleware())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bank Office API is running! 🏦")
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(app.Deps.Metrics.Handler()))

	accountweb.Routes(fiberApp, app.LedgerService)
	transactionweb.Routes(fiberApp, app.LedgerService)
	clientweb.Routes(fiberApp, app.ClientService)
	reportweb.Routes(fiberApp, app.ReportService, nil)
	return fiberApp
}
