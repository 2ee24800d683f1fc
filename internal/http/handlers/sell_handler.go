package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gizmocash/internal/domain"
	"gizmocash/internal/flow"
	applog "gizmocash/internal/log"
	"gizmocash/internal/otp"
	"gizmocash/internal/repos"
	"gizmocash/internal/services"
	"gizmocash/internal/validate"
)

// wizMarker is the one-shot session cookie written when a checkpointed
// step renders. Landing back on /sell with the marker still set means
// the user navigated away mid-flow (back button / exit), so the
// snapshot is discarded. A same-page refresh never touches /sell, so
// the snapshot survives it.
const wizMarker = "wiz_active"

type SellHandler struct {
	Catalog  *services.CatalogService
	Quotes   *services.QuoteService
	Flows    *services.FlowService
	Sell     *services.SellService
	OTP      otp.Provider
	Settings *repos.SettingsRepo
	Validate *validator.Validate
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// state loads the session's flow and enforces the step guard: any
// missing upstream field redirects to the flow start instead of
// rendering a broken page.
func (h *SellHandler) state(c *fiber.Ctx, step flow.Step) (*flow.State, string, bool) {
	sid := ensureSID(c)
	st, err := h.Flows.Load(sid)
	if err != nil {
		applog.Error(c, "flow.load", err, nil)
	}
	if st == nil || !st.CanEnter(step) {
		applog.Security(c, "flow.guard.redirect", map[string]any{"step": string(step)})
		_ = c.Redirect("/sell")
		return nil, sid, false
	}
	if flow.Checkpointed(step) && c.Method() == fiber.MethodGet {
		h.setMarker(c)
	}
	return st, sid, true
}

func (h *SellHandler) setMarker(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:        wizMarker,
		Value:       "1",
		Path:        "/",
		HTTPOnly:    true,
		SameSite:    fiber.CookieSameSiteLaxMode,
		SessionOnly: true,
	})
}

func (h *SellHandler) clearMarker(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     wizMarker,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   -1,
	})
}

// Start renders the category page. A set marker means the user backed
// out of a checkpointed step: that abandons the previous flow.
func (h *SellHandler) Start(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if c.Cookies(wizMarker) != "" {
		applog.Info(c, "flow.abandoned", nil)
		_ = h.Flows.Reset(sid)
		h.clearMarker(c)
	}
	return render(c, "sell_category", fiber.Map{"Categories": []domain.Category{
		domain.CategoryPhone, domain.CategoryLaptop, domain.CategoryTablet,
	}})
}

func (h *SellHandler) ChooseCategory(c *fiber.Ctx) error {
	sid := ensureSID(c)
	st := flow.NewState(domain.Category(c.FormValue("category")))
	if st == nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Redirect("/sell")
	}
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	return c.Redirect("/sell/brand")
}

func (h *SellHandler) BrandPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepBrand)
	if !ok {
		return nil
	}
	// Fetch errors degrade to an empty list; the wizard never hard-fails
	// a selection step on a transient backend error.
	brands, err := h.Catalog.ListBrands(st.Category)
	if err != nil {
		applog.Error(c, "sell.brands.fetch", err, nil)
		brands = nil
	}
	return render(c, "sell_brand", fiber.Map{"State": st, "Brands": brands})
}

func (h *SellHandler) ChooseBrand(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepBrand)
	if !ok {
		return nil
	}
	id, okID := validate.ID(c.FormValue("brand_id"))
	if !okID {
		return c.Redirect("/sell/brand")
	}
	b, err := h.Catalog.GetBrand(id)
	if err != nil {
		applog.Error(c, "sell.brand.get", err, map[string]any{"brand_id": id})
		return c.Redirect("/sell/brand")
	}
	st.MergeBrand(b.ID, b.Name)
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	if h.Catalog.BrandHasSeries(b.ID) {
		return c.Redirect("/sell/series")
	}
	return c.Redirect("/sell/device")
}

func (h *SellHandler) SeriesPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepSeries)
	if !ok {
		return nil
	}
	if !h.Catalog.BrandHasSeries(st.BrandID) {
		return c.Redirect("/sell/device")
	}
	return render(c, "sell_series", fiber.Map{"State": st, "Series": h.Catalog.SeriesForBrand(st.BrandID)})
}

func (h *SellHandler) ChooseSeries(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepSeries)
	if !ok {
		return nil
	}
	st.MergeSeries(c.FormValue("series"))
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	return c.Redirect("/sell/device")
}

func (h *SellHandler) DevicePage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepDevice)
	if !ok {
		return nil
	}
	devices, err := h.Catalog.DevicesForBrand(st.BrandID, st.Series)
	if err != nil {
		applog.Error(c, "sell.devices.fetch", err, nil)
		devices = nil
	}
	return render(c, "sell_device", fiber.Map{"State": st, "Devices": devices})
}

func (h *SellHandler) ChooseDevice(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepDevice)
	if !ok {
		return nil
	}
	id, okID := validate.ID(c.FormValue("device_id"))
	if !okID {
		return c.Redirect("/sell/device")
	}
	d, err := h.Catalog.GetDevice(id)
	if err != nil || d.BrandID != st.BrandID {
		applog.Security(c, "sell.device.mismatch", map[string]any{"device_id": id})
		return c.Redirect("/sell/device")
	}
	st.MergeDevice(d)
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	return c.Redirect("/sell/city")
}

func (h *SellHandler) CityPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepCity)
	if !ok {
		return nil
	}
	cities, err := h.Catalog.ListCities()
	if err != nil {
		applog.Error(c, "sell.cities.fetch", err, nil)
		cities = nil
	}
	return render(c, "sell_city", fiber.Map{"State": st, "Cities": cities})
}

func (h *SellHandler) ChooseCity(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepCity)
	if !ok {
		return nil
	}
	id, okID := validate.ID(c.FormValue("city_id"))
	if !okID {
		return c.Redirect("/sell/city")
	}
	city, err := h.Catalog.GetCity(id)
	if err != nil {
		applog.Error(c, "sell.city.get", err, map[string]any{"city_id": id})
		return c.Redirect("/sell/city")
	}
	st.MergeCity(city.ID, city.Name)
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	return c.Redirect("/sell/variant")
}
