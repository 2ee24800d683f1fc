package main

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"gizmocash/internal/config"
	"gizmocash/internal/http/handlers"
	applog "gizmocash/internal/log"
	"gizmocash/internal/otp"
	"gizmocash/internal/repos"
)

func main() {
	cfg := config.Load()

	if err := applog.Init(cfg.Env); err != nil {
		log.Fatal(err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		zap.L().Fatal("db open", zap.Error(err))
	}

	// The dev provider logs codes instead of sending SMS. Swap in a real
	// gateway-backed Provider here for production.
	provider := otp.NewDevProvider(cfg.OTPDevCode)
	provider.OnCode = func(phone, code string) {
		zap.L().Info("otp.code.issued", zap.String("phone", phone), zap.String("code", code))
	}

	engine := html.New("./web/templates", ".html")
	engine.Reload(cfg.Env != "production")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/admin/events")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/admin/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(db, cfg, provider)

	// ---------- Public pages ----------
	app.Get("/", deps.Home.Home)

	// ---------- Sell wizard ----------
	app.Get("/sell", deps.Sell.Start)
	app.Post("/sell/category", deps.Sell.ChooseCategory)
	app.Get("/sell/brand", deps.Sell.BrandPage)
	app.Post("/sell/brand", deps.Sell.ChooseBrand)
	app.Get("/sell/series", deps.Sell.SeriesPage)
	app.Post("/sell/series", deps.Sell.ChooseSeries)
	app.Get("/sell/device", deps.Sell.DevicePage)
	app.Post("/sell/device", deps.Sell.ChooseDevice)
	app.Get("/sell/city", deps.Sell.CityPage)
	app.Post("/sell/city", deps.Sell.ChooseCity)
	app.Get("/sell/variant", deps.Sell.VariantPage)
	app.Post("/sell/variant", deps.Sell.ChooseVariant)
	app.Get("/sell/condition", deps.Sell.ConditionPage)
	app.Post("/sell/condition", deps.Sell.SubmitCondition)

	// OTP posts are throttled harder than the global limiter.
	otpLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.otp.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many attempts. Please wait a minute."})
		},
	})
	app.Get("/sell/otp", deps.Sell.OTPPage)
	app.Post("/sell/otp/start", otpLimiter, deps.Sell.OTPStart)
	app.Post("/sell/otp/verify", otpLimiter, deps.Sell.OTPVerify)

	app.Get("/sell/valuation", deps.Sell.ValuationPage)
	app.Get("/sell/pickup", deps.Sell.PickupPage)
	app.Post("/sell/pickup", deps.Sell.SubmitPickup)
	app.Get("/sell/done/:id", deps.Sell.DonePage)

	// ---------- Admin ----------
	app.Get("/admin/login", deps.AdminAuth.LoginPage)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.admin_login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AdminAuth.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Sessions))
	admin.Post("/logout", deps.AdminAuth.Logout)
	admin.Get("/api/session", deps.AdminAuth.SessionInfo)
	admin.Get("/events", deps.Admin.Events)

	admin.Get("/", deps.Admin.Dashboard)
	admin.Get("/leads", deps.Admin.LeadsPage)
	admin.Post("/leads/:id/status", deps.Admin.UpdateLeadStatus)
	admin.Get("/pickups", deps.Admin.PickupsPage)
	admin.Post("/pickups/:id/status", deps.Admin.UpdatePickupStatus)
	admin.Get("/activity", deps.Admin.ActivityPage)
	admin.Get("/export/leads.csv", deps.Admin.ExportLeadsCSV)
	admin.Get("/export/pickups.csv", deps.Admin.ExportPickupsCSV)

	admin.Get("/brands", deps.AdminCatalog.BrandsPage)
	admin.Post("/brands", deps.AdminCatalog.SaveBrand)
	admin.Post("/brands/:id/delete", deps.AdminCatalog.DeleteBrand)
	admin.Get("/devices", deps.AdminCatalog.DevicesPage)
	admin.Post("/devices", deps.AdminCatalog.SaveDevice)
	admin.Post("/devices/:id/delete", deps.AdminCatalog.DeleteDevice)
	admin.Get("/variants", deps.AdminCatalog.VariantsPage)
	admin.Post("/variants", deps.AdminCatalog.SaveVariant)
	admin.Post("/variants/:id/delete", deps.AdminCatalog.DeleteVariant)
	admin.Get("/laptop-prices", deps.AdminCatalog.LaptopPricesPage)
	admin.Post("/laptop-prices", deps.AdminCatalog.SaveLaptopPrice)
	admin.Get("/cities", deps.AdminCatalog.CitiesPage)
	admin.Post("/cities", deps.AdminCatalog.SaveCity)
	admin.Post("/cities/:id/delete", deps.AdminCatalog.DeleteCity)
	admin.Get("/reviews", deps.AdminCatalog.ReviewsPage)
	admin.Post("/reviews/:id", deps.AdminCatalog.ModerateReview)
	admin.Get("/settings", deps.AdminCatalog.SettingsPage)
	admin.Post("/settings", deps.AdminCatalog.SaveSetting)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	zap.L().Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.L().Fatal("server", zap.Error(err))
	}
}
