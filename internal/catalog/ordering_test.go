package catalog

import (
	"testing"

	"gizmocash/internal/domain"
)

func dev(name string) domain.Device { return domain.Device{ID: name, Name: name} }

func TestOrderDevices_CuratedFirstUnlistedLast(t *testing.T) {
	in := []domain.Device{
		dev("iPhone 11"),
		dev("iPhone Mystery Model"),
		dev("iPhone 16 Pro"),
		dev("iPhone 15"),
	}
	out := OrderDevices("apple", in)
	want := []string{"iPhone 16 Pro", "iPhone 15", "iPhone 11", "iPhone Mystery Model"}
	for i, name := range want {
		if out[i].Name != name {
			t.Fatalf("pos %d: want %s, got %s", i, name, out[i].Name)
		}
	}
	// input slice untouched
	if in[0].Name != "iPhone 11" {
		t.Fatal("OrderDevices mutated its input")
	}
}

func TestOrderDevices_UnknownBrandPassthrough(t *testing.T) {
	in := []domain.Device{dev("B"), dev("A")}
	out := OrderDevices("nokia", in)
	if out[0].Name != "B" || out[1].Name != "A" {
		t.Fatalf("unexpected reorder: %+v", out)
	}
}

func TestDevicesInSeries(t *testing.T) {
	if !HasSeries("samsung") || HasSeries("apple") {
		t.Fatal("series table membership wrong")
	}
	in := []domain.Device{
		dev("Galaxy A55"),
		dev("Galaxy S24"),
		dev("Galaxy S23"),
		dev("Some Other Model"),
	}
	out := DevicesInSeries("samsung", "Galaxy S", in)
	if len(out) != 2 || out[0].Name != "Galaxy S24" || out[1].Name != "Galaxy S23" {
		t.Fatalf("bad series filter: %+v", out)
	}
	if got := DevicesInSeries("samsung", "No Such Series", in); got != nil {
		t.Fatalf("unknown series should be empty, got %+v", got)
	}
}
