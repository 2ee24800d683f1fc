package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gizmocash/internal/domain"
	applog "gizmocash/internal/log"
	"gizmocash/internal/repos"
	"gizmocash/internal/validate"
)

// AdminCatalogHandler is the catalog maintenance side of the
// back-office: brands, devices, variants, laptop pricing tables, cities,
// review moderation and system settings.
type AdminCatalogHandler struct {
	Brands   *repos.BrandRepo
	Devices  *repos.DeviceRepo
	Variants *repos.VariantRepo
	Laptops  *repos.LaptopRepo
	Cities   *repos.CityRepo
	Reviews  *repos.ReviewRepo
	Settings *repos.SettingsRepo
	Admins   *repos.AdminRepo
}

func (h *AdminCatalogHandler) audit(c *fiber.Ctx, action, detail string) {
	sess := adminSession(c)
	if sess == nil {
		return
	}
	if err := h.Admins.LogActivity(sess.Admin.ID, action, detail); err != nil {
		applog.Error(c, "admin.activity.write", err, map[string]any{"action": action})
	}
}

// ---------- Brands ----------

func (h *AdminCatalogHandler) BrandsPage(c *fiber.Ctx) error {
	brands, err := h.Brands.ListAll()
	if err != nil {
		applog.Error(c, "admin.brands.fetch", err, nil)
	}
	return render(c, "admin_brands", fiber.Map{"Brands": brands})
}

func (h *AdminCatalogHandler) SaveBrand(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("id"))
	cat := domain.Category(c.FormValue("category"))
	if !okID || c.FormValue("name") == "" || !cat.Valid() {
		applog.Security(c, "validation.fail", map[string]any{"form": "brand"})
		return c.Redirect("/admin/brands")
	}
	b := domain.Brand{
		ID:       id,
		Name:     c.FormValue("name"),
		Category: string(cat),
		LogoPath: c.FormValue("logo_path"),
		Active:   c.FormValue("active") == "on",
	}
	if err := h.Brands.Upsert(b); err != nil {
		applog.Error(c, "admin.brand.save", err, map[string]any{"brand_id": b.ID})
	} else {
		h.audit(c, "brand.save", b.ID)
	}
	return c.Redirect("/admin/brands")
}

func (h *AdminCatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/admin/brands")
	}
	if err := h.Brands.Delete(id); err != nil {
		applog.Error(c, "admin.brand.delete", err, map[string]any{"brand_id": id})
	} else {
		h.audit(c, "brand.delete", id)
	}
	return c.Redirect("/admin/brands")
}

// ---------- Devices ----------

func (h *AdminCatalogHandler) DevicesPage(c *fiber.Ctx) error {
	devices, err := h.Devices.ListAll()
	if err != nil {
		applog.Error(c, "admin.devices.fetch", err, nil)
	}
	brands, err := h.Brands.ListAll()
	if err != nil {
		applog.Error(c, "admin.brands.fetch", err, nil)
	}
	return render(c, "admin_devices", fiber.Map{"Devices": devices, "Brands": brands})
}

func (h *AdminCatalogHandler) SaveDevice(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("id"))
	brandID, okBrand := validate.ID(c.FormValue("brand_id"))
	if !okID || !okBrand || c.FormValue("name") == "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "device"})
		return c.Redirect("/admin/devices")
	}
	d := domain.Device{
		ID:          id,
		BrandID:     brandID,
		Name:        c.FormValue("name"),
		Series:      c.FormValue("series"),
		ReleaseDate: c.FormValue("release_date"),
		Active:      c.FormValue("active") == "on",
	}
	if err := h.Devices.Upsert(d); err != nil {
		applog.Error(c, "admin.device.save", err, map[string]any{"device_id": d.ID})
	} else {
		h.audit(c, "device.save", d.ID)
	}
	return c.Redirect("/admin/devices")
}

func (h *AdminCatalogHandler) DeleteDevice(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/admin/devices")
	}
	if err := h.Devices.Delete(id); err != nil {
		applog.Error(c, "admin.device.delete", err, map[string]any{"device_id": id})
	} else {
		h.audit(c, "device.delete", id)
	}
	return c.Redirect("/admin/devices")
}

// ---------- Variants ----------

func (h *AdminCatalogHandler) VariantsPage(c *fiber.Ctx) error {
	devices, err := h.Devices.ListAll()
	if err != nil {
		applog.Error(c, "admin.devices.fetch", err, nil)
	}
	deviceID := c.Query("device")
	var variants []domain.Variant
	if deviceID != "" {
		variants, err = h.Variants.ListByDevice(deviceID)
		if err != nil {
			applog.Error(c, "admin.variants.fetch", err, nil)
		}
	}
	return render(c, "admin_variants", fiber.Map{"Devices": devices, "Variants": variants, "DeviceID": deviceID})
}

func (h *AdminCatalogHandler) SaveVariant(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("id"))
	deviceID, okDev := validate.ID(c.FormValue("device_id"))
	base, err := strconv.ParseInt(c.FormValue("base_price"), 10, 64)
	if !okID || !okDev || err != nil || base <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"form": "variant"})
		return c.Redirect("/admin/variants")
	}
	v := domain.Variant{ID: id, DeviceID: deviceID, Storage: c.FormValue("storage"), BasePrice: base}
	if err := h.Variants.Upsert(v); err != nil {
		applog.Error(c, "admin.variant.save", err, map[string]any{"variant_id": v.ID})
	} else {
		h.audit(c, "variant.save", v.ID)
	}
	return c.Redirect("/admin/variants?device=" + deviceID)
}

func (h *AdminCatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/admin/variants")
	}
	if err := h.Variants.Delete(id); err != nil {
		applog.Error(c, "admin.variant.delete", err, map[string]any{"variant_id": id})
	} else {
		h.audit(c, "variant.delete", id)
	}
	return c.Redirect("/admin/variants")
}

// ---------- Laptop pricing ----------

func (h *AdminCatalogHandler) LaptopPricesPage(c *fiber.Ctx) error {
	rows, err := h.Laptops.ListPrices()
	if err != nil {
		applog.Error(c, "admin.laptop_prices.fetch", err, nil)
	}
	return render(c, "admin_laptop_prices", fiber.Map{"Rows": rows})
}

func (h *AdminCatalogHandler) SaveLaptopPrice(c *fiber.Ctx) error {
	variantID, okID := validate.ID(c.FormValue("variant_id"))
	if !okID {
		applog.Security(c, "validation.fail", map[string]any{"form": "laptop_price"})
		return c.Redirect("/admin/laptop-prices")
	}
	i64 := func(field string) int64 {
		n, _ := strconv.ParseInt(c.FormValue(field), 10, 64)
		return n
	}
	pct := func(field string) int {
		n, _ := strconv.Atoi(c.FormValue(field))
		if n < 0 || n > 100 {
			return 0
		}
		return n
	}
	rec := domain.LaptopPriceRecord{
		VariantID:            variantID,
		PriceUnderOneYear:    i64("price_under_1yr"),
		PriceOneToThreeYears: i64("price_1_to_3yrs"),
		PriceOverThreeYears:  i64("price_over_3yrs"),
		DeductGoodPct:        pct("deduct_good_pct"),
		DeductAveragePct:     pct("deduct_average_pct"),
		DeductBelowAvgPct:    pct("deduct_below_avg_pct"),
		ChargerDeduction:     i64("charger_deduction"),
		BoxDeduction:         i64("box_deduction"),
		BillDeduction:        i64("bill_deduction"),
	}
	if rec.PriceUnderOneYear <= 0 || rec.PriceOneToThreeYears <= 0 || rec.PriceOverThreeYears <= 0 {
		applog.Security(c, "validation.fail", map[string]any{"form": "laptop_price", "field": "base_prices"})
		return c.Redirect("/admin/laptop-prices")
	}
	if err := h.Laptops.UpsertPrice(rec); err != nil {
		applog.Error(c, "admin.laptop_price.save", err, map[string]any{"variant_id": variantID})
	} else {
		h.audit(c, "laptop_price.save", variantID)
	}
	return c.Redirect("/admin/laptop-prices")
}

// ---------- Cities ----------

func (h *AdminCatalogHandler) CitiesPage(c *fiber.Ctx) error {
	cities, err := h.Cities.ListAll()
	if err != nil {
		applog.Error(c, "admin.cities.fetch", err, nil)
	}
	return render(c, "admin_cities", fiber.Map{"Cities": cities})
}

func (h *AdminCatalogHandler) SaveCity(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("id"))
	if !okID || c.FormValue("name") == "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "city"})
		return c.Redirect("/admin/cities")
	}
	city := domain.City{ID: id, Name: c.FormValue("name"), Active: c.FormValue("active") == "on"}
	if err := h.Cities.Upsert(city); err != nil {
		applog.Error(c, "admin.city.save", err, map[string]any{"city_id": city.ID})
	} else {
		h.audit(c, "city.save", city.ID)
	}
	return c.Redirect("/admin/cities")
}

func (h *AdminCatalogHandler) DeleteCity(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/admin/cities")
	}
	if err := h.Cities.Delete(id); err != nil {
		applog.Error(c, "admin.city.delete", err, map[string]any{"city_id": id})
	} else {
		h.audit(c, "city.delete", id)
	}
	return c.Redirect("/admin/cities")
}

// ---------- Reviews ----------

func (h *AdminCatalogHandler) ReviewsPage(c *fiber.Ctx) error {
	reviews, err := h.Reviews.ListAll()
	if err != nil {
		applog.Error(c, "admin.reviews.fetch", err, nil)
	}
	return render(c, "admin_reviews", fiber.Map{"Reviews": reviews})
}

func (h *AdminCatalogHandler) ModerateReview(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/admin/reviews")
	}
	switch c.FormValue("action") {
	case "approve":
		if err := h.Reviews.SetApproved(id, true); err != nil {
			applog.Error(c, "admin.review.approve", err, map[string]any{"review_id": id})
		} else {
			h.audit(c, "review.approve", id)
		}
	case "hide":
		if err := h.Reviews.SetApproved(id, false); err != nil {
			applog.Error(c, "admin.review.hide", err, map[string]any{"review_id": id})
		} else {
			h.audit(c, "review.hide", id)
		}
	case "delete":
		if err := h.Reviews.Delete(id); err != nil {
			applog.Error(c, "admin.review.delete", err, map[string]any{"review_id": id})
		} else {
			h.audit(c, "review.delete", id)
		}
	}
	return c.Redirect("/admin/reviews")
}

// ---------- Settings ----------

func (h *AdminCatalogHandler) SettingsPage(c *fiber.Ctx) error {
	settings, err := h.Settings.All()
	if err != nil {
		applog.Error(c, "admin.settings.fetch", err, nil)
	}
	return render(c, "admin_settings", fiber.Map{"Settings": settings})
}

func (h *AdminCatalogHandler) SaveSetting(c *fiber.Ctx) error {
	key := c.FormValue("key")
	value := c.FormValue("value")
	if key == "" {
		return c.Redirect("/admin/settings")
	}
	if err := h.Settings.Set(key, value); err != nil {
		applog.Error(c, "admin.setting.save", err, map[string]any{"key": key})
	} else {
		h.audit(c, "setting.save", key)
	}
	return c.Redirect("/admin/settings")
}
