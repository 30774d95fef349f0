package models

import "time"

// CompanyProfile is the fact sheet derived from the first row of an uploaded
// dataset. Fields are never empty; missing source values fall back to the
// defaults below.
type CompanyProfile struct {
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	ContactPerson string `json:"contact_person"`
	Services      string `json:"services"`
}

// DefaultProfile returns the profile used before any dataset is loaded and
// whenever a source value is missing.
func DefaultProfile() CompanyProfile {
	return CompanyProfile{
		Name:          "Your Company",
		Industry:      "business",
		ContactPerson: "Representative",
		Services:      "professional services",
	}
}

// UploadRecord is one row of the session's upload history.
type UploadRecord struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"file_name"`
	RecordCount int       `json:"record_count"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}
