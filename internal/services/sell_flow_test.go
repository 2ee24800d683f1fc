package services_test

import (
	"testing"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"gizmocash/internal/domain"
	"gizmocash/internal/flow"
	"gizmocash/internal/repos"
	"gizmocash/internal/services"
	"gizmocash/internal/sse"
)

func openSeeded(t *testing.T) (*services.CatalogService, *services.QuoteService, *services.FlowService, *services.SellService, *repos.LeadRepo, *repos.PickupRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	brandRepo := repos.NewBrandRepo(db)
	deviceRepo := repos.NewDeviceRepo(db)
	variantRepo := repos.NewVariantRepo(db)
	laptopRepo := repos.NewLaptopRepo(db)
	cityRepo := repos.NewCityRepo(db)
	flowRepo := repos.NewFlowRepo(db)
	leadRepo := repos.NewLeadRepo(db)
	pickupRepo := repos.NewPickupRepo(db)

	catalogSvc := services.NewCatalogService(brandRepo, deviceRepo, variantRepo, laptopRepo, cityRepo)
	quoteSvc := services.NewQuoteService(laptopRepo)
	flowSvc := services.NewFlowService(flowRepo)
	sellSvc := services.NewSellService(leadRepo, pickupRepo, flowSvc, sse.NewHub())
	return catalogSvc, quoteSvc, flowSvc, sellSvc, leadRepo, pickupRepo
}

func TestSellFlow_PhoneEndToEnd(t *testing.T) {
	catalogSvc, quoteSvc, flowSvc, sellSvc, leadRepo, pickupRepo := openSeeded(t)
	quoteSvc.Now = func() time.Time { return time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC) }

	sid := "test-session"
	st := flow.NewState(domain.CategoryPhone)

	brands, err := catalogSvc.ListBrands(domain.CategoryPhone)
	if err != nil || len(brands) == 0 {
		t.Fatalf("brands: %v %v", brands, err)
	}
	st.MergeBrand("apple", "Apple")

	devices, err := catalogSvc.DevicesForBrand("apple", "")
	if err != nil || len(devices) == 0 {
		t.Fatalf("devices: %v %v", devices, err)
	}
	dev, err := catalogSvc.GetDevice("iphone-14")
	if err != nil {
		t.Fatal(err)
	}
	st.MergeDevice(dev)
	st.MergeCity("blr", "Bengaluru")

	v, err := catalogSvc.GetVariant("iphone-14-128")
	if err != nil {
		t.Fatal(err)
	}
	st.MergeVariant(v)

	// Released 2022-09-16, valued 2023-01-16: 4 whole months, 8% bucket.
	in := domain.ConditionInput{PowersOn: true, Display: domain.GradeGood, Body: domain.GradeExcellent}
	q := quoteSvc.QuotePhone(st, in)
	// 32000 -> 30400 (display -5%) -> 27968 (age -8%)
	if q.FinalPrice != 27968 {
		t.Fatalf("want 27968, got %d", q.FinalPrice)
	}
	st.MergeCondition(in, q)
	if err := flowSvc.Save(sid, st); err != nil {
		t.Fatal(err)
	}

	// Refresh mid-OTP: snapshot restores identically.
	restored, err := flowSvc.Load(sid)
	if err != nil {
		t.Fatal(err)
	}
	if restored == nil || !restored.CanEnter(flow.StepOTP) || restored.Quote.FinalPrice != 27968 {
		t.Fatalf("bad restore: %+v", restored)
	}

	if err := sellSvc.RecordVerified(sid, restored, "9876543210"); err != nil {
		t.Fatal(err)
	}
	leads, err := leadRepo.ListLatest(10)
	if err != nil || len(leads) != 1 {
		t.Fatalf("want 1 lead, got %v (%v)", leads, err)
	}
	if leads[0].Status != domain.LeadNew || leads[0].QuotedAt != 27968 {
		t.Fatalf("bad lead: %+v", leads[0])
	}

	pid, err := sellSvc.SchedulePickup(sid, restored, services.PickupDetails{
		CustomerName: "Priya S",
		Address:      "42 MG Road, Indiranagar",
		Pincode:      "560038",
		PickupDate:   "2023-01-20",
		PickupSlot:   "10:00-13:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := pickupRepo.Get(pid)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != domain.PickupPending || p.FinalPrice != 27968 || p.LeadID != leads[0].ID {
		t.Fatalf("bad pickup: %+v", p)
	}

	// The flow snapshot is discarded once the pickup is recorded.
	after, err := flowSvc.Load(sid)
	if err != nil {
		t.Fatal(err)
	}
	if after != nil {
		t.Fatalf("snapshot should be cleared, got %+v", after)
	}
}

func TestSellFlow_LaptopQuoteFromSeededPricing(t *testing.T) {
	catalogSvc, quoteSvc, _, _, _, _ := openSeeded(t)

	procs, err := catalogSvc.LaptopProcessors("xps-13")
	if err != nil || len(procs) != 2 {
		t.Fatalf("processors: %v %v", procs, err)
	}
	rams, err := catalogSvc.LaptopRAMs("xps-13", "Intel Core i7")
	if err != nil || len(rams) != 1 || rams[0] != "16 GB" {
		t.Fatalf("facet narrowing broken: %v %v", rams, err)
	}
	v, err := catalogSvc.ResolveLaptopVariant("xps-13", "Intel Core i7", "16 GB", "512 GB", `13.4"`)
	if err != nil {
		t.Fatal(err)
	}

	st := flow.NewState(domain.CategoryLaptop)
	st.MergeBrand("dell", "Dell")
	st.MergeDevice(domain.Device{ID: "xps-13", Name: "XPS 13"})
	st.MergeCity("del", "Delhi NCR")
	st.MergeLaptopVariant(v)

	// Seeded: 1-3yrs base 52000, average 10%, missing charger -1500.
	q, err := quoteSvc.QuoteLaptop(st, domain.AgeOneToThree, domain.LaptopAverage, false, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if q.FinalPrice != 45300 {
		t.Fatalf("want 45300, got %d", q.FinalPrice)
	}
	if q.Breakdown.Base != 52000 || q.Breakdown.Body != -5200 || q.Breakdown.Accessories != -1500 {
		t.Fatalf("laptop breakdown should itemize bracket base and deductions, got %+v", q.Breakdown)
	}
}

func TestQuoteLaptop_MissingPricingIsHardError(t *testing.T) {
	_, quoteSvc, _, _, _, _ := openSeeded(t)
	st := flow.NewState(domain.CategoryLaptop)
	st.LaptopVariantID = "no-such-variant"
	if _, err := quoteSvc.QuoteLaptop(st, domain.AgeOverThree, domain.LaptopGood, true, true, true); err == nil {
		t.Fatal("missing pricing record must fail, not default")
	}
}

func TestFlowService_CorruptSnapshotRestartsFlow(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	flowRepo := repos.NewFlowRepo(db)
	flowSvc := services.NewFlowService(flowRepo)

	if err := flowRepo.Save("sid-x", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	st, err := flowSvc.Load("sid-x")
	if err != nil || st != nil {
		t.Fatalf("corrupt snapshot should yield nil state, got %+v (%v)", st, err)
	}
	raw, err := flowRepo.Load("sid-x")
	if err != nil || raw != nil {
		t.Fatalf("corrupt snapshot should be dropped, got %q", raw)
	}
}
