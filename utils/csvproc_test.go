package utils

import (
	"reflect"
	"testing"
)

func TestFindColumnByKeywords(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		keywords []string
		want     string
	}{
		{
			name:     "keyword substring of header",
			headers:  []string{"Customer Email", "Company Name"},
			keywords: []string{"company"},
			want:     "Company Name",
		},
		{
			name:     "header substring of keyword",
			headers:  []string{"Org"},
			keywords: []string{"organization"},
			want:     "Org",
		},
		{
			name:     "abbreviated header token",
			headers:  []string{"Biz Name"},
			keywords: []string{"company", "business"},
			want:     "Biz Name",
		},
		{
			name:     "short tokens are not abbreviations",
			headers:  []string{"S.No", "Organization"},
			keywords: []string{"company", "business", "organization"},
			want:     "Organization",
		},
		{
			name:     "keyword priority beats header order",
			headers:  []string{"Business Unit", "Company"},
			keywords: []string{"company", "business"},
			want:     "Company",
		},
		{
			name:     "header order breaks ties within a keyword",
			headers:  []string{"Phone Home", "Phone Work"},
			keywords: []string{"phone"},
			want:     "Phone Home",
		},
		{
			name:     "original casing preserved",
			headers:  []string{"EMAIL ADDRESS"},
			keywords: []string{"email"},
			want:     "EMAIL ADDRESS",
		},
		{
			name:     "no match",
			headers:  []string{"Foo", "Bar"},
			keywords: []string{"company", "business"},
			want:     "",
		},
		{
			name:     "empty headers",
			headers:  nil,
			keywords: []string{"company"},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindColumnByKeywords(tt.headers, tt.keywords); got != tt.want {
				t.Errorf("FindColumnByKeywords() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapColumnsScenario(t *testing.T) {
	headers := []string{"Biz Name", "Agent", "Vertical", "Courses Offered"}
	mapping, ok := MapColumns(headers, DefaultFieldRules())
	if !ok {
		t.Fatal("expected a viable mapping")
	}
	want := map[string]string{
		FieldCompany:  "Biz Name",
		FieldName:     "Agent",
		FieldIndustry: "Vertical",
		FieldServices: "Courses Offered",
	}
	if !reflect.DeepEqual(mapping, want) {
		t.Errorf("MapColumns() = %v, want %v", mapping, want)
	}

	record := map[string]string{
		"Biz Name":        "Acme Robotics",
		"Agent":           "Jane Lee",
		"Vertical":        "manufacturing",
		"Courses Offered": "industrial automation training",
	}
	profile := BuildCompanyProfile([]map[string]string{record}, mapping)
	if profile.Name != "Acme Robotics" || profile.ContactPerson != "Jane Lee" ||
		profile.Industry != "manufacturing" || profile.Services != "industrial automation training" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestMapColumnsCompanyHeader(t *testing.T) {
	for _, headers := range [][]string{
		{"company"},
		{"Company Name", "Contact"},
		{"id", "parent_company", "city"},
	} {
		mapping, ok := MapColumns(headers, DefaultFieldRules())
		if !ok {
			t.Errorf("headers %v: expected viable mapping", headers)
			continue
		}
		col := mapping[FieldCompany]
		found := false
		for _, h := range headers {
			if h == col {
				found = true
			}
		}
		if !found {
			t.Errorf("headers %v: company mapped to %q, not a real header", headers, col)
		}
	}
}

func TestMapColumnsViability(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		ok      bool
	}{
		{"empty header list", nil, false},
		{"nothing recognizable", []string{"id", "city", "zip"}, false},
		{"name only", []string{"Contact Person"}, true},
		{"company only", []string{"Organization"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := MapColumns(tt.headers, DefaultFieldRules()); ok != tt.ok {
				t.Errorf("viability = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestMapColumnsIgnoresSerialColumn(t *testing.T) {
	headers := []string{"S.No", "Organization", "Contact Person"}
	mapping, ok := MapColumns(headers, DefaultFieldRules())
	if !ok {
		t.Fatal("expected a viable mapping")
	}
	if mapping[FieldCompany] != "Organization" {
		t.Errorf("company = %q, want Organization", mapping[FieldCompany])
	}
	if mapping[FieldName] != "Contact Person" {
		t.Errorf("name = %q, want Contact Person", mapping[FieldName])
	}
	for field, col := range mapping {
		if col == "S.No" {
			t.Errorf("serial column claimed by %s", field)
		}
	}
}

func TestMapColumnsClaimsHeaderOnce(t *testing.T) {
	// "Biz Name" satisfies both the company and name keyword sets; only the
	// earlier field keeps it.
	mapping, _ := MapColumns([]string{"Biz Name"}, DefaultFieldRules())
	if mapping[FieldCompany] != "Biz Name" {
		t.Errorf("company = %q, want Biz Name", mapping[FieldCompany])
	}
	if got, ok := mapping[FieldName]; ok {
		t.Errorf("name unexpectedly mapped to %q", got)
	}
}

func TestExtractFieldFallbacks(t *testing.T) {
	mapping := map[string]string{FieldCompany: "Firm"}
	tests := []struct {
		name   string
		record map[string]string
		want   string
	}{
		{"mapped header wins", map[string]string{"Firm": "Acme", "company": "Other"}, "Acme"},
		{"mapped value trimmed", map[string]string{"Firm": "  Acme  "}, "Acme"},
		{"empty mapped value falls to alias", map[string]string{"Firm": "  ", "company_name": "Beta Corp"}, "Beta Corp"},
		{"alias order respected", map[string]string{"company": "First", "business": "Second"}, "First"},
		{"everything empty falls to default", map[string]string{"Firm": "", "company_name": ""}, "Your Company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractField(tt.record, FieldCompany, mapping); got != tt.want {
				t.Errorf("ExtractField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCompanyProfileNeverEmpty(t *testing.T) {
	mapping, _ := MapColumns([]string{"company_name"}, DefaultFieldRules())
	records := []map[string]string{{"company_name": ""}}
	p := BuildCompanyProfile(records, mapping)
	if p.Name != "Your Company" || p.ContactPerson != "Representative" ||
		p.Industry != "business" || p.Services != "professional services" {
		t.Errorf("expected full default profile, got %+v", p)
	}
}

func TestBuildCompanyProfileEmptyDataset(t *testing.T) {
	p := BuildCompanyProfile(nil, map[string]string{FieldCompany: "Firm"})
	if p.Name != "Your Company" {
		t.Errorf("empty dataset should yield defaults, got %+v", p)
	}
}

func TestBuildCompanyProfileUsesFirstRecordOnly(t *testing.T) {
	mapping := map[string]string{FieldCompany: "Company"}
	records := []map[string]string{
		{"Company": "First Corp"},
		{"Company": "Second Corp"},
	}
	if p := BuildCompanyProfile(records, mapping); p.Name != "First Corp" {
		t.Errorf("profile name = %q, want First Corp", p.Name)
	}
}

func TestReadTableRowsCSV(t *testing.T) {
	content := []byte("Company,Agent\nAcme,Jane\nBeta,John\n")
	rows, err := ReadTableRows(content, ".csv")
	if err != nil {
		t.Fatalf("ReadTableRows: %v", err)
	}
	headers, records := ParseTable(rows)
	if !reflect.DeepEqual(headers, []string{"Company", "Agent"}) {
		t.Errorf("headers = %v", headers)
	}
	if len(records) != 2 || records[0]["Company"] != "Acme" || records[1]["Agent"] != "John" {
		t.Errorf("records = %v", records)
	}
}

func TestReadTableRowsUnsupported(t *testing.T) {
	if _, err := ReadTableRows([]byte("x"), ".pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParseTableEmpty(t *testing.T) {
	headers, records := ParseTable(nil)
	if headers != nil || records != nil {
		t.Errorf("expected nil headers and records, got %v %v", headers, records)
	}
}

func TestParseTableShortAndBlankCells(t *testing.T) {
	rows := [][]string{
		{" Company ", ""},
		{"Acme"},
	}
	headers, records := ParseTable(rows)
	if !reflect.DeepEqual(headers, []string{"Company", "Col1"}) {
		t.Errorf("headers = %v", headers)
	}
	if records[0]["Company"] != "Acme" || records[0]["Col1"] != "" {
		t.Errorf("records = %v", records)
	}
}

func TestHeaderSignature(t *testing.T) {
	a := HeaderSignature([]string{"Company", "Agent"})
	b := HeaderSignature([]string{"Company", "Agent"})
	c := HeaderSignature([]string{"Agent", "Company"})
	if a != b {
		t.Error("signature not stable for identical headers")
	}
	if a == c {
		t.Error("signature should depend on header order")
	}
}
