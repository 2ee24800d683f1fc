package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"gizmocash/internal/repos"
)

// ExportService streams back-office data as CSV.
type ExportService struct {
	Leads   *repos.LeadRepo
	Pickups *repos.PickupRepo
}

func NewExportService(leads *repos.LeadRepo, pickups *repos.PickupRepo) *ExportService {
	return &ExportService{Leads: leads, Pickups: pickups}
}

func (s *ExportService) WriteLeadsCSV(w io.Writer) error {
	leads, err := s.Leads.All()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "phone", "category", "brand", "device", "city", "quoted_price", "status", "created_at"}); err != nil {
		return err
	}
	for _, l := range leads {
		rec := []string{l.ID, l.Phone, l.Category, l.BrandName, l.DeviceName, l.CityName,
			strconv.FormatInt(l.QuotedAt, 10), l.Status, l.CreatedAt}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ExportService) WritePickupsCSV(w io.Writer) error {
	pickups, err := s.Pickups.All()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{"id", "phone", "category", "brand", "device", "variant", "city",
		"final_price", "customer", "address", "pincode", "pickup_date", "pickup_slot", "status", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range pickups {
		rec := []string{p.ID, p.Phone, p.Category, p.BrandName, p.DeviceName, p.VariantLabel,
			p.CityName, strconv.FormatInt(p.FinalPrice, 10), p.CustomerName, p.Address,
			p.Pincode, p.PickupDate, p.PickupSlot, p.Status, p.CreatedAt}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
