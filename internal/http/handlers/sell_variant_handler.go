package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gizmocash/internal/domain"
	"gizmocash/internal/flow"
	applog "gizmocash/internal/log"
	"gizmocash/internal/pricing"
	"gizmocash/internal/validate"
)

// VariantPage renders the flat storage list for phones/tablets, or the
// faceted picker for laptops. Laptop facets accumulate as query
// parameters (proc, ram, storage); each narrows the next list.
func (h *SellHandler) VariantPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepVariant)
	if !ok {
		return nil
	}
	if !st.IsLaptop() {
		variants, err := h.Catalog.VariantsForDevice(st.DeviceID)
		if err != nil {
			applog.Error(c, "sell.variants.fetch", err, nil)
			variants = nil
		}
		return render(c, "sell_variant", fiber.Map{"State": st, "Variants": variants})
	}
	return h.laptopFacetPage(c, st)
}

func (h *SellHandler) laptopFacetPage(c *fiber.Ctx, st *flow.State) error {
	proc := c.Query("proc")
	ram := c.Query("ram")
	storage := c.Query("storage")

	data := fiber.Map{"State": st, "Proc": proc, "RAM": ram, "Storage": storage}
	var opts []string
	var err error
	switch {
	case proc == "":
		opts, err = h.Catalog.LaptopProcessors(st.DeviceID)
		data["Facet"] = "proc"
	case ram == "":
		opts, err = h.Catalog.LaptopRAMs(st.DeviceID, proc)
		data["Facet"] = "ram"
	case storage == "":
		opts, err = h.Catalog.LaptopStorages(st.DeviceID, proc, ram)
		data["Facet"] = "storage"
	default:
		opts, err = h.Catalog.LaptopScreens(st.DeviceID, proc, ram, storage)
		data["Facet"] = "screen"
	}
	if err != nil {
		applog.Error(c, "sell.laptop.facets", err, map[string]any{"facet": data["Facet"]})
		opts = nil
	}
	data["Options"] = opts
	return render(c, "sell_laptop_variant", data)
}

func (h *SellHandler) ChooseVariant(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepVariant)
	if !ok {
		return nil
	}

	if st.IsLaptop() {
		v, err := h.Catalog.ResolveLaptopVariant(st.DeviceID,
			c.FormValue("proc"), c.FormValue("ram"), c.FormValue("storage"), c.FormValue("screen"))
		if err != nil {
			applog.Error(c, "sell.laptop.resolve", err, nil)
			return c.Redirect("/sell/variant")
		}
		st.MergeLaptopVariant(v)
	} else {
		id, okID := validate.ID(c.FormValue("variant_id"))
		if !okID {
			return c.Redirect("/sell/variant")
		}
		v, err := h.Catalog.GetVariant(id)
		if err != nil || v.DeviceID != st.DeviceID {
			applog.Security(c, "sell.variant.mismatch", map[string]any{"variant_id": id})
			return c.Redirect("/sell/variant")
		}
		st.MergeVariant(v)
	}

	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	return c.Redirect("/sell/condition")
}

func (h *SellHandler) ConditionPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepCondition)
	if !ok {
		return nil
	}
	tmpl := "sell_condition"
	if st.IsLaptop() {
		tmpl = "sell_laptop_condition"
	}
	return render(c, tmpl, fiber.Map{"State": st})
}

// SubmitCondition computes the offer and writes the first mandatory
// checkpoint, so a refresh mid-OTP keeps the priced offer.
func (h *SellHandler) SubmitCondition(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepCondition)
	if !ok {
		return nil
	}

	if st.IsLaptop() {
		return h.submitLaptopCondition(c, sid, st)
	}

	display := domain.Grade(c.FormValue("display"))
	body := domain.Grade(c.FormValue("body"))
	if !display.Valid() || !body.Valid() {
		applog.Security(c, "validation.fail", map[string]any{"field": "condition"})
		return c.Redirect("/sell/condition")
	}
	in := domain.ConditionInput{
		PowersOn:   c.FormValue("powers_on") == "yes",
		Display:    display,
		Body:       body,
		HasCharger: c.FormValue("has_charger") == "yes",
		HasBill:    c.FormValue("has_bill") == "yes",
		HasBox:     c.FormValue("has_box") == "yes",
	}
	q := h.Quotes.QuotePhone(st, in)
	st.MergeCondition(in, q)

	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.checkpoint", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save your progress. Please try again."})
	}
	applog.Audit(c, "sell.quote", map[string]any{"final_price": q.FinalPrice, "device": st.DeviceName})
	return c.Redirect("/sell/otp")
}

func (h *SellHandler) submitLaptopCondition(c *fiber.Ctx, sid string, st *flow.State) error {
	age := domain.AgeRange(c.FormValue("age_range"))
	cond := domain.LaptopCondition(c.FormValue("condition"))
	if !age.Valid() || !cond.Valid() {
		applog.Security(c, "validation.fail", map[string]any{"field": "laptop_condition"})
		return c.Redirect("/sell/condition")
	}
	in := domain.ConditionInput{
		PowersOn:   true,
		Display:    domain.GradeExcellent,
		Body:       domain.GradeExcellent,
		HasCharger: c.FormValue("has_charger") == "yes",
		HasBill:    c.FormValue("has_bill") == "yes",
		HasBox:     c.FormValue("has_box") == "yes",
	}

	q, err := h.Quotes.QuoteLaptop(st, age, cond, in.HasCharger, in.HasBox, in.HasBill)
	if err == pricing.ErrPricingUnavailable {
		// No price exists for this configuration; blocking error, the
		// one selection failure that must not degrade silently.
		applog.Error(c, "sell.laptop.pricing_missing", err, map[string]any{"variant": st.LaptopVariantID})
		return render(c, "sell_laptop_condition", fiber.Map{
			"State": st,
			"Err":   "We can't price this configuration right now. Please try a different configuration or check back later.",
		})
	}
	if err != nil {
		applog.Error(c, "sell.laptop.quote", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}

	st.MergeLaptopCondition(age, cond, in, q)
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.checkpoint", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save your progress. Please try again."})
	}
	applog.Audit(c, "sell.quote", map[string]any{"final_price": q.FinalPrice, "device": st.DeviceName})
	return c.Redirect("/sell/otp")
}
