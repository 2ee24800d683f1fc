package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "gizmocash/internal/log"
	"gizmocash/internal/services"
)

const adminCookie = "admin_token"

func setAdminCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    token,
		Path:     "/admin",
		Expires:  exp,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   false, // enable true behind TLS
	})
}

func clearAdminCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{Name: adminCookie, Value: "", Path: "/admin", HTTPOnly: true, MaxAge: -1})
}

// RequireAdmin gates /admin routes. Every authenticated request
// re-issues the idle token, which is what turns the 30-minute TTL into
// an inactivity window. API paths get a 401 instead of the login
// redirect so client-side polling can react.
func RequireAdmin(svc *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deny := func() error {
			clearAdminCookie(c)
			if strings.HasPrefix(c.Path(), "/admin/api/") || strings.HasPrefix(c.Path(), "/admin/events") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
			}
			return c.Redirect("/admin/login")
		}

		token := c.Cookies(adminCookie)
		if token == "" {
			return deny()
		}
		sess, err := svc.Validate(token)
		if err != nil {
			applog.Security(c, "admin.session.invalid", nil)
			return deny()
		}
		if tok, exp, err := svc.Refresh(sess); err == nil && tok != "" {
			setAdminCookie(c, tok, exp)
			sess.ExpiresAt = exp
		}
		c.Locals("admin", sess.Admin)
		c.Locals("adminSession", sess)
		return c.Next()
	}
}
