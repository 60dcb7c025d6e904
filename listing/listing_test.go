package listing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const listingCSV = `Company_Name,Security_Code,Sector,Market_Type,Website
MAYBANK,1155,FINANCIAL SERVICES,Main,https://www.maybank.com
PUBLIC BANK,1295,FINANCIAL SERVICES,Main,
TENAGA,5347,UTILITIES,Main,
GREATECH,0208,TECHNOLOGY,ACE,
AEMULUS,0181,TECHNOLOGY,ACE,
`

func mustDecode(t *testing.T, in string) *Listing {
	t.Helper()
	l, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	return l
}

func TestDecode(t *testing.T) {
	l := mustDecode(t, listingCSV)
	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
	want := Company{Name: "GREATECH", Code: "0208", Sector: "TECHNOLOGY", MarketType: "ACE"}
	if diff := cmp.Diff(want, l.Companies()[3]); diff != "" {
		t.Errorf("Companies()[3] mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	for name, in := range map[string]string{
		"missing column": "Company_Name,Security_Code,Sector\nA,1,B\n",
		"missing code":   "Company_Name,Security_Code,Sector,Market_Type\nA,,B,Main\n",
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(in)); err == nil {
				t.Error("Decode() expected an error")
			}
		})
	}
}

func TestFilter(t *testing.T) {
	l := mustDecode(t, listingCSV)
	tests := []struct {
		market, sector string
		want           []string
	}{
		{All, All, []string{"MAYBANK", "PUBLIC BANK", "TENAGA", "GREATECH", "AEMULUS"}},
		{"", "", []string{"MAYBANK", "PUBLIC BANK", "TENAGA", "GREATECH", "AEMULUS"}},
		{"Main", All, []string{"MAYBANK", "PUBLIC BANK", "TENAGA"}},
		{"Main", "UTILITIES", []string{"TENAGA"}},
		{All, "TECHNOLOGY", []string{"GREATECH", "AEMULUS"}},
		{"ACE", "UTILITIES", nil},
	}
	for _, tt := range tests {
		got := l.Filter(tt.market, tt.sector).Names()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Filter(%q, %q) mismatch (-want +got):\n%s", tt.market, tt.sector, diff)
		}
	}
}

func TestUniqueValues(t *testing.T) {
	l := mustDecode(t, listingCSV)
	if diff := cmp.Diff([]string{"Main", "ACE"}, l.MarketTypes()); diff != "" {
		t.Errorf("MarketTypes() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"FINANCIAL SERVICES", "UTILITIES"}, l.Sectors("Main")); diff != "" {
		t.Errorf("Sectors(Main) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"FINANCIAL SERVICES", "UTILITIES", "TECHNOLOGY"}, l.Sectors(All)); diff != "" {
		t.Errorf("Sectors(All) mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	l := mustDecode(t, listingCSV)
	c, ok := l.ByName("TENAGA")
	if !ok || c.Symbol(DefaultSuffix) != "5347.KL" {
		t.Errorf("ByName(TENAGA) = %v, %v, want symbol 5347.KL", c, ok)
	}
	c, ok = l.ByCode("0208")
	if !ok || c.Name != "GREATECH" {
		t.Errorf("ByCode(0208) = %v, %v, want GREATECH", c, ok)
	}
	if _, ok := l.ByName("UNKNOWN"); ok {
		t.Error("ByName(UNKNOWN) found a company")
	}
}
