// Package catalog holds hand-authored display tables for vendor-specific
// device listing: an explicit model ordering for one vendor and named
// series groups for another. These are versioned reference data edited
// by hand when new models launch; nothing here is computed.
package catalog

import (
	"sort"

	"gizmocash/internal/domain"
)

// TablesVersion is bumped whenever the ordering or series tables change.
const TablesVersion = "2026-08"

// modelOrdering lists models in the order they should appear for brands
// that get a curated flat list. Models not listed sort after all listed
// ones, in whatever order the datastore returned them.
var modelOrdering = map[string][]string{
	"apple": {
		"iPhone 16 Pro Max",
		"iPhone 16 Pro",
		"iPhone 16 Plus",
		"iPhone 16",
		"iPhone 15 Pro Max",
		"iPhone 15 Pro",
		"iPhone 15 Plus",
		"iPhone 15",
		"iPhone 14 Pro Max",
		"iPhone 14 Pro",
		"iPhone 14",
		"iPhone 13",
		"iPhone SE (3rd gen)",
		"iPhone 12",
		"iPhone 11",
	},
}

// SeriesGroup is one named group on the "pick a series" screen.
type SeriesGroup struct {
	Name   string
	Models []string
}

// seriesGroups partitions a vendor's models into named series; brands
// listed here get an intermediate series-selection step before the
// model list.
var seriesGroups = map[string][]SeriesGroup{
	"samsung": {
		{Name: "Galaxy S", Models: []string{
			"Galaxy S24 Ultra", "Galaxy S24+", "Galaxy S24",
			"Galaxy S23 Ultra", "Galaxy S23", "Galaxy S22", "Galaxy S21 FE",
		}},
		{Name: "Galaxy Z", Models: []string{
			"Galaxy Z Fold 6", "Galaxy Z Flip 6", "Galaxy Z Fold 5", "Galaxy Z Flip 5",
		}},
		{Name: "Galaxy A", Models: []string{
			"Galaxy A55", "Galaxy A35", "Galaxy A54", "Galaxy A34", "Galaxy A15",
		}},
		{Name: "Galaxy M", Models: []string{
			"Galaxy M55", "Galaxy M35", "Galaxy M34", "Galaxy M14",
		}},
	},
}

// HasCuratedOrder reports whether a brand has a hand-authored model order.
func HasCuratedOrder(brandID string) bool {
	_, ok := modelOrdering[brandID]
	return ok
}

// HasSeries reports whether a brand's models are picked via series groups.
func HasSeries(brandID string) bool {
	_, ok := seriesGroups[brandID]
	return ok
}

// SeriesFor returns the series groups for a brand, in display order.
func SeriesFor(brandID string) []SeriesGroup {
	return seriesGroups[brandID]
}

// OrderDevices sorts devices per the brand's curated ordering table.
// Unlisted models keep their relative input order after all listed ones.
func OrderDevices(brandID string, devices []domain.Device) []domain.Device {
	order, ok := modelOrdering[brandID]
	if !ok {
		return devices
	}
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	out := make([]domain.Device, len(devices))
	copy(out, devices)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Name]
		rj, jok := rank[out[j].Name]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

// DevicesInSeries filters devices down to the named series' membership
// list, preserving the table's model order.
func DevicesInSeries(brandID, series string, devices []domain.Device) []domain.Device {
	byName := make(map[string]domain.Device, len(devices))
	for _, d := range devices {
		byName[d.Name] = d
	}
	for _, g := range seriesGroups[brandID] {
		if g.Name != series {
			continue
		}
		var out []domain.Device
		for _, name := range g.Models {
			if d, ok := byName[name]; ok {
				out = append(out, d)
			}
		}
		return out
	}
	return nil
}
