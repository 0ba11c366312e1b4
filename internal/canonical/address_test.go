package canonical

import "testing"

func TestNormalizeAddress_Determinism(t *testing.T) {
	a := NormalizeAddress(AddressInput{
		Street1: "100 Main Street",
		City:    "WILMINGTON",
		State:   "Delaware",
		Zip:     "19801-1234",
	})
	b := NormalizeAddress(AddressInput{
		Street1: "100  Main St.",
		City:    "Wilmington",
		State:   "DE",
		Zip:     "19801",
	})
	if a == nil || b == nil {
		t.Fatal("expected canonical addresses")
	}
	if a.Hash != b.Hash {
		t.Errorf("equivalent addresses must share a hash: %q vs %q", a.Hash, b.Hash)
	}
	if a.Street1 != "100 Main St" {
		t.Errorf("unexpected street %q", a.Street1)
	}
	if a.State != "DE" {
		t.Errorf("unexpected state %q", a.State)
	}
	if a.Zip != "19801" {
		t.Errorf("zip+4 must trim to five digits, got %q", a.Zip)
	}
}

func TestNormalizeAddress_CountryAliases(t *testing.T) {
	a := NormalizeAddress(AddressInput{Street1: "1 First Ave", City: "Dover", Country: "United States"})
	b := NormalizeAddress(AddressInput{Street1: "1 First Avenue", City: "Dover", Country: "us"})
	if a == nil || b == nil {
		t.Fatal("expected canonical addresses")
	}
	if a.Hash != b.Hash {
		t.Errorf("country aliases must collapse: %q vs %q", a.Hash, b.Hash)
	}
}

func TestNormalizeAddress_Absent(t *testing.T) {
	if a := NormalizeAddress(AddressInput{State: "DE", Zip: "19801"}); a != nil {
		t.Errorf("expected absent without street or city, got %+v", a)
	}
	if a := NormalizeAddress(AddressInput{}); a != nil {
		t.Errorf("expected absent for empty input, got %+v", a)
	}
}

func TestNormalizeAddress_SecondaryLine(t *testing.T) {
	a := NormalizeAddress(AddressInput{
		Street1: "200 Commerce Blvd",
		Street2: "Suite 410",
		City:    "Dover",
		State:   "DE",
	})
	if a == nil {
		t.Fatal("expected canonical address")
	}
	if a.Street2 != "Ste 410" {
		t.Errorf("unexpected secondary line %q", a.Street2)
	}
}
