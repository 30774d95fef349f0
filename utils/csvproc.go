package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/models"
)

// Canonical contact-record fields resolved from arbitrary headers.
const (
	FieldName     = "name"
	FieldCompany  = "company"
	FieldIndustry = "industry"
	FieldServices = "services"
	FieldPhone    = "phone"
	FieldEmail    = "email"
)

// FieldRule binds a canonical field to its ordered keyword list. Rules are
// evaluated in slice order and a header claimed by an earlier rule is not
// offered to later ones.
type FieldRule struct {
	Field    string
	Keywords []string
}

// DefaultFieldRules returns the standard detection table. Company is resolved
// before name so that a lone company-ish header is not eaten by the broader
// name keywords.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{FieldCompany, []string{"company", "business", "organization", "institution", "hub"}},
		{FieldName, []string{"name", "person", "contact", "agent", "caller"}},
		{FieldIndustry, []string{"industry", "sector", "field", "domain", "vertical"}},
		{FieldServices, []string{"service", "course", "program", "solution", "offering"}},
		{FieldPhone, []string{"phone", "mobile", "contact"}},
		{FieldEmail, []string{"email", "mail"}},
	}
}

var headerTokenSep = func(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.'
}

// minAbbrevLen is the shortest header token treated as an abbreviation of a
// keyword. Shorter tokens ("S", "No") sit inside almost any keyword and would
// let serial-number columns claim real fields.
const minAbbrevLen = 3

// keywordMatchesHeader reports whether a keyword and a header refer to the
// same concept: substring containment in either direction, also tried against
// each header token so abbreviated headers ("Biz Name" vs "business") still
// resolve.
func keywordMatchesHeader(keyword, header string) bool {
	if strings.Contains(header, keyword) || strings.Contains(keyword, header) {
		return true
	}
	for _, tok := range strings.FieldsFunc(header, headerTokenSep) {
		if strings.Contains(tok, keyword) {
			return true
		}
		if len(tok) >= minAbbrevLen && strings.Contains(keyword, tok) {
			return true
		}
	}
	return false
}

// FindColumnByKeywords returns the first header matching the first keyword
// that has any match, preserving the original header casing. Keywords carry
// priority; ties within a keyword resolve to header order. Returns "" when
// nothing matches.
func FindColumnByKeywords(headers, keywords []string) string {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}
	for _, kw := range keywords {
		lk := strings.ToLower(kw)
		for i, lh := range lowered {
			if keywordMatchesHeader(lk, lh) {
				return headers[i]
			}
		}
	}
	return ""
}

// MapColumns resolves each rule's canonical field to a raw header. The
// mapping only ever contains headers present in the input list. The dataset
// is viable iff a name-like or company-like column was found.
func MapColumns(headers []string, rules []FieldRule) (map[string]string, bool) {
	mapping := make(map[string]string, len(rules))
	claimed := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		avail := make([]string, 0, len(headers))
		for _, h := range headers {
			if _, taken := claimed[h]; !taken {
				avail = append(avail, h)
			}
		}
		if col := FindColumnByKeywords(avail, rule.Keywords); col != "" {
			mapping[rule.Field] = col
			claimed[col] = struct{}{}
		}
	}
	_, hasName := mapping[FieldName]
	_, hasCompany := mapping[FieldCompany]
	return mapping, hasName || hasCompany
}

// Literal header aliases tried when the mapped column yields nothing, and the
// final defaults. Both tables are fixed.
var fieldAliases = map[string][]string{
	FieldCompany:  {"company", "company_name", "business", "organization"},
	FieldName:     {"name", "contact_person", "calling_agent_name"},
	FieldIndustry: {"industry", "sector", "field"},
	FieldServices: {"services", "courses", "offerings"},
}

var fieldDefaults = map[string]string{
	FieldCompany:  "Your Company",
	FieldName:     "Representative",
	FieldIndustry: "business",
	FieldServices: "professional services",
}

// ExtractField resolves a canonical field from a record: mapped header first,
// then the literal aliases in order, then the default. First non-empty value
// wins; values are trimmed before the emptiness check.
func ExtractField(record map[string]string, field string, mapping map[string]string) string {
	if h, ok := mapping[field]; ok {
		if v := strings.TrimSpace(record[h]); v != "" {
			return v
		}
	}
	for _, alias := range fieldAliases[field] {
		if v := strings.TrimSpace(record[alias]); v != "" {
			return v
		}
	}
	return fieldDefaults[field]
}

// BuildCompanyProfile derives the profile from the first record only; one
// uploaded dataset is assumed to describe one company context. An empty
// dataset yields the default profile.
func BuildCompanyProfile(records []map[string]string, mapping map[string]string) models.CompanyProfile {
	if len(records) == 0 {
		return models.DefaultProfile()
	}
	first := records[0]
	return models.CompanyProfile{
		Name:          ExtractField(first, FieldCompany, mapping),
		ContactPerson: ExtractField(first, FieldName, mapping),
		Industry:      ExtractField(first, FieldIndustry, mapping),
		Services:      ExtractField(first, FieldServices, mapping),
	}
}

// ReadTableRows parses raw CSV or XLSX bytes into rows of cells.
func ReadTableRows(content []byte, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(bytes.NewReader(content))
		r.FieldsPerRecord = -1 // allow variable columns
		return r.ReadAll()
	case ".xlsx", ".xls":
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return [][]string{}, nil
		}
		rows := [][]string{}
		rs, err := f.Rows(sheets[0])
		if err != nil {
			return nil, err
		}
		for rs.Next() {
			r, err := rs.Columns()
			if err != nil {
				return nil, err
			}
			rows = append(rows, r)
		}
		return rows, nil
	default:
		return nil, errors.New("unsupported file type; use .csv or .xlsx/.xls")
	}
}

// ParseTable turns raw rows into a normalized header list plus one
// header->value record per data row. The first row is the header.
func ParseTable(rows [][]string) ([]string, []map[string]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	headers := NormalizeHeaders(rows[0])
	records := make([]map[string]string, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		r := rows[i]
		m := make(map[string]string, len(headers))
		for j := 0; j < len(headers); j++ {
			var v string
			if j < len(r) {
				v = strings.TrimSpace(r[j])
			}
			m[headers[j]] = v
		}
		records = append(records, m)
	}
	return headers, records
}

// NormalizeHeaders trims header cells and names blank ones ColN.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, v := range raw {
		t := strings.TrimSpace(v)
		if t == "" {
			t = "Col" + strconv.Itoa(i)
		}
		headers[i] = t
	}
	return headers
}

// HeaderSignature hashes the header list for the column-mapping cache.
func HeaderSignature(headers []string) string {
	b, _ := json.Marshal(headers)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
