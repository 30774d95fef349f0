package models

type RespondRequest struct {
	CustomerResponse string         `json:"customer_response"`
	CustomerData     map[string]any `json:"customer_data"` // reserved, unused by current logic
}

type RespondResponse struct {
	AIResponse string `json:"ai_response"`
}

type UploadResponse struct {
	Message       string            `json:"message"`
	CompanyInfo   CompanyProfile    `json:"company_info"`
	Columns       []string          `json:"columns"`
	ColumnMapping map[string]string `json:"column_mapping"`
	RecordCount   int               `json:"record_count"`
}

type InsightsResponse struct {
	PatternCount      int            `json:"pattern_count"`
	CompanyInfo       CompanyProfile `json:"company_info"`
	CompanyDataLoaded bool           `json:"company_data_loaded"`
	StorageLocation   string         `json:"storage_location"`
	UploadCount       *int           `json:"upload_count,omitempty"`
}
