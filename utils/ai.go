package utils

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type AIConfig struct {
	APIKey   string
	GenModel string
}

// DetectColumnsAI asks Gemini to map the canonical contact-record fields onto
// the given headers. Used only as a fallback when keyword detection finds
// neither a name-like nor a company-like column; callers must validate that
// returned values are real headers.
func DetectColumnsAI(ctx context.Context, cfg AIConfig, headers []string, preview [][]string) (map[string]string, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	hj, _ := json.Marshal(headers)
	pj, _ := json.Marshal(preview)
	prompt := "" +
		"You are a data understanding AI.\n\n" +
		"Given the column headers of a company-contact CSV export and a few sample rows, decide which header (if any) holds each of: " +
		"name (contact person), company, industry, services, phone, email.\n\n" +
		"Important:\n- Return STRICT JSON only, no commentary, no markdown fences.\n" +
		"- Use keys exactly: name, company, industry, services, phone, email.\n" +
		"- Each value must be one of the given headers verbatim, or \"\" when absent.\n\n" +
		"Headers: " + string(hj) + "\n" +
		"Sample rows: " + string(pj)

	model := client.GenerativeModel(cfg.GenModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	text := extractText(resp)
	if text == "" {
		return nil, errors.New("gemini returned empty response")
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return nil, err
	}
	mapping := make(map[string]string, len(out))
	for field, col := range out {
		if strings.TrimSpace(col) != "" {
			mapping[field] = strings.TrimSpace(col)
		}
	}
	return mapping, nil
}

func stripFences(s string) string {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if s, ok := p.(genai.Text); ok {
				b.WriteString(string(s))
			}
		}
	}
	return b.String()
}
