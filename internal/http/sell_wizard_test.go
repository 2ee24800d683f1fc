package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestWizard_PhoneWalkthrough(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition",
		"powers_on=yes&display=good&body=excellent&has_charger=yes"), "/sell/otp")

	if resp := cl.post("/sell/otp/start", "phone=9876543210"); resp.StatusCode != http.StatusOK {
		t.Fatalf("otp start: %d", resp.StatusCode)
	}
	if cl.cookies["otp_ch"] == "" {
		t.Fatal("challenge cookie not set")
	}
	wantRedirect(t, cl.post("/sell/otp/verify", "code="+testOTPCode), "/sell/valuation")

	if resp := cl.get("/sell/valuation"); resp.StatusCode != http.StatusOK {
		t.Fatalf("valuation page: %d", resp.StatusCode)
	}

	resp := cl.post("/sell/pickup",
		"customer_name=Priya+S&address=42+MG+Road,+Indiranagar&pincode=560038&pickup_date=2099-01-20&pickup_slot=10:00-13:00")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("pickup submit: %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/sell/done/") {
		t.Fatalf("want done redirect, got %s", loc)
	}

	done := cl.get(loc)
	if done.StatusCode != http.StatusOK {
		t.Fatalf("done page: %d", done.StatusCode)
	}
	body, _ := io.ReadAll(done.Body)
	if !strings.Contains(string(body), "iPhone 14") {
		t.Fatalf("done page missing device name:\n%s", body)
	}

	// The flow is finished; wizard pages fall back to the start.
	wantRedirect(t, cl.get("/sell/valuation"), "/sell")
}

func TestWizard_WrongCodeStaysOnOTP(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition", "powers_on=yes&display=good&body=good"), "/sell/otp")

	cl.post("/sell/otp/start", "phone=9876543210")
	resp := cl.post("/sell/otp/verify", "code=000001")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wrong code should re-render the page, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "incorrect") {
		t.Fatalf("expected incorrect-code message:\n%s", body)
	}

	// The right code still works afterwards.
	wantRedirect(t, cl.post("/sell/otp/verify", "code="+testOTPCode), "/sell/valuation")
}

func TestWizard_GuardsRedirectToStart(t *testing.T) {
	app := newApp(t)

	for _, path := range []string{
		"/sell/brand", "/sell/device", "/sell/city", "/sell/variant",
		"/sell/condition", "/sell/otp", "/sell/valuation", "/sell/pickup",
	} {
		cl := newClient(t, app)
		wantRedirect(t, cl.get(path), "/sell")
	}
}

func TestWizard_VariantDeviceMismatchRejected(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")

	// A variant belonging to another device must not attach.
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-13-128"), "/sell/variant")
	wantRedirect(t, cl.get("/sell/condition"), "/sell")
}

func TestWizard_BackExitDiscardsFlow(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition", "powers_on=yes&display=excellent&body=excellent"), "/sell/otp")

	// Rendering a checkpointed step marks the session as mid-flow.
	if resp := cl.get("/sell/otp"); resp.StatusCode != http.StatusOK {
		t.Fatalf("otp page: %d", resp.StatusCode)
	}
	if cl.cookies["wiz_active"] == "" {
		t.Fatal("mid-flow marker not set")
	}

	// Navigating back to the start abandons the snapshot.
	if resp := cl.get("/sell"); resp.StatusCode != http.StatusOK {
		t.Fatalf("sell start: %d", resp.StatusCode)
	}
	wantRedirect(t, cl.get("/sell/otp"), "/sell")
}

func TestWizard_RefreshKeepsCheckpoint(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition", "powers_on=yes&display=good&body=good"), "/sell/otp")

	// Reloading the OTP page twice in a row keeps the priced offer.
	for i := 0; i < 2; i++ {
		if resp := cl.get("/sell/otp"); resp.StatusCode != http.StatusOK {
			t.Fatalf("otp reload %d: %d", i, resp.StatusCode)
		}
	}
}

// A user who verified one number must not be able to smuggle a second,
// never-verified number into the flow by re-posting the send-code form.
func TestWizard_SwappedPhoneMustReverify(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition", "powers_on=yes&display=good&body=good"), "/sell/otp")

	cl.post("/sell/otp/start", "phone=9876543210")
	wantRedirect(t, cl.post("/sell/otp/verify", "code="+testOTPCode), "/sell/valuation")
	if resp := cl.get("/sell/valuation"); resp.StatusCode != http.StatusOK {
		t.Fatalf("valuation after verify: %d", resp.StatusCode)
	}

	// Sending a code to a different number reopens the OTP gate.
	if resp := cl.post("/sell/otp/start", "phone=9999999999"); resp.StatusCode != http.StatusOK {
		t.Fatalf("otp restart: %d", resp.StatusCode)
	}
	wantRedirect(t, cl.get("/sell/valuation"), "/sell")
	wantRedirect(t, cl.get("/sell/pickup"), "/sell")

	// Confirming the new number restores access.
	wantRedirect(t, cl.post("/sell/otp/verify", "code="+testOTPCode), "/sell/valuation")
	if resp := cl.get("/sell/valuation"); resp.StatusCode != http.StatusOK {
		t.Fatalf("valuation after re-verify: %d", resp.StatusCode)
	}
}

// The confirmation page ends the flow, so it must also drop the
// mid-flow marker; otherwise the next visit to /sell would log a bogus
// abandonment of an already-finished flow.
func TestWizard_DonePageClearsMidFlowMarker(t *testing.T) {
	app := newApp(t)
	cl := newClient(t, app)

	wantRedirect(t, cl.post("/sell/category", "category=phone"), "/sell/brand")
	wantRedirect(t, cl.post("/sell/brand", "brand_id=apple"), "/sell/device")
	wantRedirect(t, cl.post("/sell/device", "device_id=iphone-14"), "/sell/city")
	wantRedirect(t, cl.post("/sell/city", "city_id=blr"), "/sell/variant")
	wantRedirect(t, cl.post("/sell/variant", "variant_id=iphone-14-128"), "/sell/condition")
	wantRedirect(t, cl.post("/sell/condition", "powers_on=yes&display=good&body=good"), "/sell/otp")
	cl.post("/sell/otp/start", "phone=9876543210")
	wantRedirect(t, cl.post("/sell/otp/verify", "code="+testOTPCode), "/sell/valuation")

	resp := cl.post("/sell/pickup",
		"customer_name=Priya+S&address=42+MG+Road,+Indiranagar&pincode=560038&pickup_date=2099-01-20&pickup_slot=10:00-13:00")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("pickup submit: %d", resp.StatusCode)
	}
	doneURL := resp.Header.Get("Location")

	// Revisit the confirmation later with a stale marker still around.
	cl.cookies["wiz_active"] = "1"
	if resp := cl.get(doneURL); resp.StatusCode != http.StatusOK {
		t.Fatalf("done page: %d", resp.StatusCode)
	}
	if cl.cookies["wiz_active"] != "" {
		t.Fatal("done page left the mid-flow marker set")
	}
}
