package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("company_admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleCompanyAdmin {
		t.Fatalf("expected company_admin got %s", role)
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLeadStatusValidity(t *testing.T) {
	for _, status := range []LeadStatus{
		LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusProposalSent, LeadStatusNegotiating, LeadStatusWon, LeadStatusLost,
	} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if LeadStatus("archived").IsValid() {
		t.Fatal("archived is not a lead status")
	}
}

func TestVendorCategoryLabelFallsBackToOther(t *testing.T) {
	if got := VendorCategoryFlorist.Label(); got != "Flowers & Decor" {
		t.Fatalf("unexpected florist label %q", got)
	}
	if got := VendorCategory("unknown").Label(); got != "Other" {
		t.Fatalf("expected Other label, got %q", got)
	}
	if _, err := ParseVendorCategory("unknown"); err == nil {
		t.Fatal("expected parse error for unknown category")
	}
}
