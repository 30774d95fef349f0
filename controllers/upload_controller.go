package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/config"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/database"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/models"
	"github.com/navin54005-stack/dynamic-ai-voice-agent/utils"
)

// UploadCompanyData ingests a CSV/XLSX export of company contacts, infers the
// column mapping, and activates the derived profile for the session.
func UploadCompanyData(cfg config.Config, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.MaxUploadBytes > 0 {
			if c.Request.ContentLength > cfg.MaxUploadBytes {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
				return
			}
			// backstop for chunked bodies with no declared length
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes)
		}
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file (field 'file')"})
			return
		}
		defer file.Close()

		buf, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type; use .csv or .xlsx/.xls"})
			return
		}

		rows, err := utils.ReadTableRows(buf, ext)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		headers, records := utils.ParseTable(rows)

		sid := c.GetString("session_id")
		mapping, ok := utils.MapColumns(headers, utils.DefaultFieldRules())
		if !ok {
			mapping, ok = fallbackMapping(c, cfg, sid, headers, rows)
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not find recognizable company or contact information columns"})
			return
		}

		profile := utils.BuildCompanyProfile(records, mapping)
		sessions.Get(sid).LoadCompanyData(records, headers, mapping, profile)

		if database.Pool != nil {
			recordUpload(sid, header.Filename, headers, mapping, profile.Name, len(records))
		}

		c.JSON(http.StatusOK, models.UploadResponse{
			Message:       "Successfully loaded company data for " + profile.Name,
			CompanyInfo:   profile,
			Columns:       headers,
			ColumnMapping: mapping,
			RecordCount:   len(records),
		})
	}
}

// fallbackMapping tries the cached mapping for this header shape, then the
// Gemini detector when a key is configured. AI-proposed columns are only
// trusted when they name real headers, and the name/company gate still
// applies.
func fallbackMapping(c *gin.Context, cfg config.Config, sid string, headers []string, rows [][]string) (map[string]string, bool) {
	if len(headers) == 0 {
		return nil, false
	}
	sig := utils.HeaderSignature(headers)

	if database.Pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		var raw []byte
		err := database.Pool.QueryRow(ctx, `SELECT mapping FROM column_mappings WHERE session_id=$1 AND signature=$2`, sid, sig).Scan(&raw)
		if err == nil {
			var cached map[string]string
			if json.Unmarshal(raw, &cached) == nil {
				if m, ok := sanitizeMapping(cached, headers); ok {
					return m, true
				}
			}
		}
	}

	if cfg.GeminiAPIKey == "" {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()
	preview := rows
	if len(preview) > 5 {
		preview = preview[:5]
	}
	detected, err := utils.DetectColumnsAI(ctx, utils.AIConfig{APIKey: cfg.GeminiAPIKey, GenModel: cfg.GeminiModel}, headers, preview)
	if err != nil {
		return nil, false
	}
	m, ok := sanitizeMapping(detected, headers)
	if ok && database.Pool != nil {
		cacheMapping(sid, sig, m)
	}
	return m, ok
}

var canonicalFields = map[string]struct{}{
	utils.FieldName: {}, utils.FieldCompany: {}, utils.FieldIndustry: {},
	utils.FieldServices: {}, utils.FieldPhone: {}, utils.FieldEmail: {},
}

// sanitizeMapping keeps only canonical fields whose value is a header that
// literally occurs in the list, then re-applies the viability gate.
func sanitizeMapping(raw map[string]string, headers []string) (map[string]string, bool) {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}
	m := make(map[string]string, len(raw))
	for field, col := range raw {
		if _, ok := canonicalFields[field]; !ok {
			continue
		}
		if _, ok := known[col]; ok {
			m[field] = col
		}
	}
	_, hasName := m[utils.FieldName]
	_, hasCompany := m[utils.FieldCompany]
	return m, hasName || hasCompany
}

func recordUpload(sid, fileName string, headers []string, mapping map[string]string, companyName string, recordCount int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cols, _ := json.Marshal(headers)
	mb, _ := json.Marshal(mapping)
	_, _ = database.Pool.Exec(ctx, `INSERT INTO uploads(session_id, file_name, record_count, columns, column_mapping, company_name) VALUES($1,$2,$3,$4::jsonb,$5::jsonb,$6)`,
		sid, fileName, recordCount, string(cols), string(mb), companyName)
	sig := utils.HeaderSignature(headers)
	cacheMapping(sid, sig, mapping)
}

func cacheMapping(sid, sig string, mapping map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mb, _ := json.Marshal(mapping)
	_, _ = database.Pool.Exec(ctx, `INSERT INTO column_mappings(session_id, signature, mapping) VALUES($1,$2,$3::jsonb)
        ON CONFLICT (session_id, signature) DO UPDATE SET mapping=EXCLUDED.mapping`,
		sid, sig, string(mb))
}
