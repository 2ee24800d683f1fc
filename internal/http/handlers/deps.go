package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"gizmocash/internal/config"
	"gizmocash/internal/otp"
	"gizmocash/internal/repos"
	"gizmocash/internal/services"
	"gizmocash/internal/sse"
)

// Deps wires repos, services and handlers once at startup.
type Deps struct {
	Home         *HomeHandler
	Sell         *SellHandler
	AdminAuth    *AdminAuthHandler
	Admin        *AdminHandler
	AdminCatalog *AdminCatalogHandler
	Sessions     *services.AdminService
}

func NewDeps(db *sqlx.DB, cfg config.Config, provider otp.Provider) *Deps {
	brandRepo := repos.NewBrandRepo(db)
	deviceRepo := repos.NewDeviceRepo(db)
	variantRepo := repos.NewVariantRepo(db)
	laptopRepo := repos.NewLaptopRepo(db)
	cityRepo := repos.NewCityRepo(db)
	flowRepo := repos.NewFlowRepo(db)
	leadRepo := repos.NewLeadRepo(db)
	pickupRepo := repos.NewPickupRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)
	adminRepo := repos.NewAdminRepo(db)

	hub := sse.NewHub()
	catalogSvc := services.NewCatalogService(brandRepo, deviceRepo, variantRepo, laptopRepo, cityRepo)
	quoteSvc := services.NewQuoteService(laptopRepo)
	flowSvc := services.NewFlowService(flowRepo)
	sellSvc := services.NewSellService(leadRepo, pickupRepo, flowSvc, hub)
	adminSvc := services.NewAdminService(adminRepo, cfg.JWTSecret, cfg.IdleTTL, cfg.RememberTTL)
	exportSvc := services.NewExportService(leadRepo, pickupRepo)

	return &Deps{
		Home: &HomeHandler{Reviews: reviewRepo},
		Sell: &SellHandler{
			Catalog:  catalogSvc,
			Quotes:   quoteSvc,
			Flows:    flowSvc,
			Sell:     sellSvc,
			OTP:      provider,
			Settings: settingsRepo,
			Validate: validator.New(),
		},
		AdminAuth: &AdminAuthHandler{Sessions: adminSvc, Admins: adminRepo},
		Admin: &AdminHandler{
			Leads:   leadRepo,
			Pickups: pickupRepo,
			Admins:  adminRepo,
			Export:  exportSvc,
			Hub:     hub,
		},
		AdminCatalog: &AdminCatalogHandler{
			Brands:   brandRepo,
			Devices:  deviceRepo,
			Variants: variantRepo,
			Laptops:  laptopRepo,
			Cities:   cityRepo,
			Reviews:  reviewRepo,
			Settings: settingsRepo,
			Admins:   adminRepo,
		},
		Sessions: adminSvc,
	}
}
