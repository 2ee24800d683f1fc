package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"gizmocash/internal/flow"
	applog "gizmocash/internal/log"
	"gizmocash/internal/otp"
	"gizmocash/internal/services"
	"gizmocash/internal/validate"
)

// otpChallenge carries the provider's challenge id between the start
// and verify posts. HTTPOnly and session-scoped, same as the sid.
const otpChallenge = "otp_ch"

func (h *SellHandler) OTPPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepOTP)
	if !ok {
		return nil
	}
	return render(c, "sell_otp", fiber.Map{
		"State": st,
		"Sent":  c.Cookies(otpChallenge) != "",
		"Err":   c.Query("err"),
	})
}

func (h *SellHandler) OTPStart(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepOTP)
	if !ok {
		return nil
	}
	phone, okPhone := validate.Phone(c.FormValue("phone"))
	if !okPhone {
		return render(c, "sell_otp", fiber.Map{"State": st, "Err": otp.UserMessage(otp.ErrInvalidPhone)})
	}

	challengeID, err := h.OTP.Start(c.Context(), phone)
	if err != nil {
		applog.Security(c, "otp.start.fail", map[string]any{"err": err.Error()})
		return render(c, "sell_otp", fiber.Map{"State": st, "Err": otp.UserMessage(err)})
	}

	// Remember the number the code went to; it is not verified yet, and
	// switching numbers drops any verification already earned.
	st.MergePhonePending(phone)
	if err := h.Flows.Save(sid, st); err != nil {
		applog.Error(c, "flow.save", err, nil)
	}
	c.Cookie(&fiber.Cookie{
		Name:        otpChallenge,
		Value:       challengeID,
		Path:        "/sell",
		HTTPOnly:    true,
		SameSite:    fiber.CookieSameSiteLaxMode,
		SessionOnly: true,
	})
	applog.Info(c, "otp.start", map[string]any{"phone_suffix": phone[len(phone)-4:]})
	return render(c, "sell_otp", fiber.Map{"State": st, "Sent": true})
}

func (h *SellHandler) OTPVerify(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepOTP)
	if !ok {
		return nil
	}
	challengeID := c.Cookies(otpChallenge)
	code, okCode := validate.OTPCode(c.FormValue("code"))
	if challengeID == "" || !okCode {
		return render(c, "sell_otp", fiber.Map{"State": st, "Sent": challengeID != "", "Err": otp.UserMessage(otp.ErrInvalidCode)})
	}

	if err := h.OTP.Confirm(c.Context(), challengeID, code); err != nil {
		applog.Security(c, "otp.confirm.fail", map[string]any{"err": err.Error()})
		sent := true
		if err == otp.ErrCodeExpired {
			// Expired challenges are single-use on the provider side too;
			// force a resend rather than another confirm attempt.
			h.clearChallenge(c)
			sent = false
		}
		return render(c, "sell_otp", fiber.Map{"State": st, "Sent": sent, "Err": otp.UserMessage(err)})
	}

	h.clearChallenge(c)
	if err := h.Sell.RecordVerified(sid, st, st.Phone); err != nil {
		applog.Error(c, "sell.lead.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	applog.Audit(c, "otp.verified", map[string]any{"lead_id": st.LeadID})
	return c.Redirect("/sell/valuation")
}

func (h *SellHandler) clearChallenge(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{Name: otpChallenge, Value: "", Path: "/sell", HTTPOnly: true, MaxAge: -1})
}

func (h *SellHandler) ValuationPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepValuation)
	if !ok {
		return nil
	}
	return render(c, "sell_valuation", fiber.Map{"State": st, "Quote": st.Quote})
}

func (h *SellHandler) PickupPage(c *fiber.Ctx) error {
	st, _, ok := h.state(c, flow.StepPickup)
	if !ok {
		return nil
	}
	return render(c, "sell_pickup", fiber.Map{"State": st, "Slots": h.pickupSlots(c)})
}

const defaultPickupSlots = "10:00-13:00,13:00-16:00,16:00-19:00"

func (h *SellHandler) pickupSlots(c *fiber.Ctx) []string {
	raw, err := h.Settings.Get("pickup_slots", defaultPickupSlots)
	if err != nil {
		applog.Error(c, "settings.pickup_slots", err, nil)
		raw = defaultPickupSlots
	}
	return strings.Split(raw, ",")
}

func (h *SellHandler) SubmitPickup(c *fiber.Ctx) error {
	st, sid, ok := h.state(c, flow.StepPickup)
	if !ok {
		return nil
	}

	d := services.PickupDetails{
		CustomerName: c.FormValue("customer_name"),
		Address:      c.FormValue("address"),
		Pincode:      c.FormValue("pincode"),
		PickupDate:   c.FormValue("pickup_date"),
		PickupSlot:   c.FormValue("pickup_slot"),
	}
	fail := func(msg string) error {
		return render(c, "sell_pickup", fiber.Map{"State": st, "Slots": h.pickupSlots(c), "Err": msg, "Form": d})
	}
	if err := h.Validate.Struct(d); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "pickup", "err": err.Error()})
		return fail("Please fill in all fields correctly.")
	}
	if _, okName := validate.Name(d.CustomerName); !okName {
		return fail("Please enter your name.")
	}
	if _, okPin := validate.Pincode(d.Pincode); !okPin {
		return fail("Please enter a valid 6-digit pincode.")
	}
	if _, okDate := validate.PickupDate(d.PickupDate, time.Now()); !okDate {
		return fail("Pickup date must be today or later.")
	}
	if _, okSlot := validate.Slot(d.PickupSlot); !okSlot {
		return fail("Please pick a pickup slot.")
	}

	pid, err := h.Sell.SchedulePickup(sid, st, d)
	if err != nil {
		applog.Error(c, "sell.pickup.create", err, nil)
		return fail("Could not schedule your pickup. Please try again.")
	}
	h.clearMarker(c)
	applog.Audit(c, "sell.pickup.scheduled", map[string]any{"pickup_id": pid})
	return c.Redirect("/sell/done/" + pid)
}

// DonePage is reachable after the snapshot has been cleared, so it
// loads the pickup by id instead of going through the step guard.
func (h *SellHandler) DonePage(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Redirect("/sell")
	}
	p, err := h.Sell.Pickups.Get(id)
	if err != nil {
		applog.Error(c, "sell.done.lookup", err, map[string]any{"pickup_id": id})
		return c.Redirect("/sell")
	}
	// The flow is over; a lingering mid-flow marker would make the next
	// visit to /sell look like an abandonment.
	h.clearMarker(c)
	return render(c, "sell_done", fiber.Map{"Pickup": p})
}
