package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "gizmocash/internal/log"
	"gizmocash/internal/repos"
	"gizmocash/internal/services"
)

type AdminAuthHandler struct {
	Sessions *services.AdminService
	Admins   *repos.AdminRepo
}

func (h *AdminAuthHandler) LoginPage(c *fiber.Ctx) error {
	if tok := c.Cookies(adminCookie); tok != "" {
		if _, err := h.Sessions.Validate(tok); err == nil {
			return c.Redirect("/admin")
		}
	}
	return render(c, "admin_login", fiber.Map{})
}

func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	remember := c.FormValue("remember") == "on"

	u, err := h.Sessions.Login(email, c.FormValue("password"))
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{"Err": "Invalid email or password."})
	}
	tok, exp, err := h.Sessions.IssueToken(u.ID, remember)
	if err != nil {
		applog.Error(c, "admin.token.issue", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("admin_login", fiber.Map{"Err": "Something went wrong. Please try again."})
	}
	setAdminCookie(c, tok, exp)
	_ = h.Admins.LogActivity(u.ID, "login", "")
	applog.Audit(c, "admin.login", map[string]any{"admin_id": u.ID, "remember": remember})
	return c.Redirect("/admin")
}

func (h *AdminAuthHandler) Logout(c *fiber.Ctx) error {
	if sess := adminSession(c); sess != nil {
		_ = h.Admins.LogActivity(sess.Admin.ID, "logout", "")
		applog.Audit(c, "admin.logout", map[string]any{"admin_id": sess.Admin.ID})
	}
	clearAdminCookie(c)
	return c.Redirect("/admin/login")
}

// SessionInfo backs the dashboard's keep-alive poll. The poll itself
// counts as activity, so an open tab never idles out.
func (h *AdminAuthHandler) SessionInfo(c *fiber.Ctx) error {
	sess := adminSession(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
	}
	return c.JSON(fiber.Map{
		"admin":      sess.Admin.Email,
		"remember":   sess.Remember,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
	})
}

func adminSession(c *fiber.Ctx) *services.Session {
	sess, _ := c.Locals("adminSession").(*services.Session)
	return sess
}
