package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"gizmocash/internal/config"
	"gizmocash/internal/http/handlers"
	"gizmocash/internal/otp"
	"gizmocash/internal/repos"
)

const testOTPCode = "123456"

// newApp builds the full route table against a seeded in-memory
// database. CSRF and rate limiting are left out so tests exercise the
// handlers, not the middleware stack.
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{
		JWTSecret:   "test-secret",
		IdleTTL:     30 * time.Minute,
		RememberTTL: 7 * 24 * time.Hour,
	}
	provider := otp.NewDevProvider(testOTPCode)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, provider)

	app.Get("/", deps.Home.Home)
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
	app.Get("/sell/otp", deps.Sell.OTPPage)
	app.Post("/sell/otp/start", deps.Sell.OTPStart)
	app.Post("/sell/otp/verify", deps.Sell.OTPVerify)
	app.Get("/sell/valuation", deps.Sell.ValuationPage)
	app.Get("/sell/pickup", deps.Sell.PickupPage)
	app.Post("/sell/pickup", deps.Sell.SubmitPickup)
	app.Get("/sell/done/:id", deps.Sell.DonePage)

	app.Get("/admin/login", deps.AdminAuth.LoginPage)
	app.Post("/admin/login", deps.AdminAuth.Login)
	admin := app.Group("/admin", handlers.RequireAdmin(deps.Sessions))
	admin.Post("/logout", deps.AdminAuth.Logout)
	admin.Get("/api/session", deps.AdminAuth.SessionInfo)
	admin.Get("/", deps.Admin.Dashboard)
	admin.Get("/leads", deps.Admin.LeadsPage)
	admin.Get("/export/leads.csv", deps.Admin.ExportLeadsCSV)

	return app
}

// client carries cookies across app.Test calls, standing in for a
// browser session.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: make(map[string]string)}
}

func (cl *client) do(method, target, form string) *http.Response {
	cl.t.Helper()
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for name, val := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: val})
	}
	resp, err := cl.app.Test(req)
	if err != nil {
		cl.t.Fatalf("%s %s: %v", method, target, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || (ck.Value == "" && !ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (cl *client) get(target string) *http.Response { return cl.do("GET", target, "") }

func (cl *client) post(target, form string) *http.Response { return cl.do("POST", target, form) }

func wantRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("want redirect to %s, got %s", location, got)
	}
}
