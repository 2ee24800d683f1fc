package services

import (
	"gizmocash/internal/catalog"
	"gizmocash/internal/domain"
	"gizmocash/internal/repos"
)

// CatalogService serves the selection steps of the sell wizard: brands,
// devices (with vendor-specific ordering/series grouping), cities and
// variants.
type CatalogService struct {
	Brands   *repos.BrandRepo
	Devices  *repos.DeviceRepo
	Variants *repos.VariantRepo
	Laptops  *repos.LaptopRepo
	Cities   *repos.CityRepo
}

func NewCatalogService(b *repos.BrandRepo, d *repos.DeviceRepo, v *repos.VariantRepo, l *repos.LaptopRepo, c *repos.CityRepo) *CatalogService {
	return &CatalogService{Brands: b, Devices: d, Variants: v, Laptops: l, Cities: c}
}

func (s *CatalogService) ListBrands(cat domain.Category) ([]domain.Brand, error) {
	return s.Brands.ListByCategory(string(cat))
}

func (s *CatalogService) GetBrand(id string) (domain.Brand, error) { return s.Brands.Get(id) }

// BrandHasSeries reports whether the brand gets a "pick a series" step.
func (s *CatalogService) BrandHasSeries(brandID string) bool {
	return catalog.HasSeries(brandID)
}

func (s *CatalogService) SeriesForBrand(brandID string) []catalog.SeriesGroup {
	return catalog.SeriesFor(brandID)
}

// DevicesForBrand lists a brand's devices with the vendor's curated
// ordering applied. If series is non-empty the list is filtered to that
// series' membership table.
func (s *CatalogService) DevicesForBrand(brandID, series string) ([]domain.Device, error) {
	devices, err := s.Devices.ListByBrand(brandID)
	if err != nil {
		return nil, err
	}
	if series != "" && catalog.HasSeries(brandID) {
		return catalog.DevicesInSeries(brandID, series, devices), nil
	}
	return catalog.OrderDevices(brandID, devices), nil
}

func (s *CatalogService) GetDevice(id string) (domain.Device, error) { return s.Devices.Get(id) }

func (s *CatalogService) ListCities() ([]domain.City, error) { return s.Cities.ListActive() }

func (s *CatalogService) GetCity(id string) (domain.City, error) { return s.Cities.Get(id) }

func (s *CatalogService) VariantsForDevice(deviceID string) ([]domain.Variant, error) {
	return s.Variants.ListByDevice(deviceID)
}

func (s *CatalogService) GetVariant(id string) (domain.Variant, error) {
	return s.Variants.Get(id)
}

// Laptop facet listings, each narrowed by the choices before it.

func (s *CatalogService) LaptopProcessors(deviceID string) ([]string, error) {
	return s.Laptops.Processors(deviceID)
}

func (s *CatalogService) LaptopRAMs(deviceID, proc string) ([]string, error) {
	return s.Laptops.RAMs(deviceID, proc)
}

func (s *CatalogService) LaptopStorages(deviceID, proc, ram string) ([]string, error) {
	return s.Laptops.Storages(deviceID, proc, ram)
}

func (s *CatalogService) LaptopScreens(deviceID, proc, ram, storage string) ([]string, error) {
	return s.Laptops.Screens(deviceID, proc, ram, storage)
}

func (s *CatalogService) ResolveLaptopVariant(deviceID, proc, ram, storage, screen string) (domain.LaptopVariant, error) {
	return s.Laptops.Resolve(deviceID, proc, ram, storage, screen)
}
