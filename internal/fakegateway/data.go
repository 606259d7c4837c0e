package fakegateway

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"
)

// snowflakeBase keeps generated ids above 2^53 so clients must not decode them as float64
const snowflakeBase int64 = 1_790_000_000_000_000_000

var (
	fakeModels = []struct {
		actual   string
		provider string
		request  string
	}{
		{"gpt-4o-2024-08-06", "openai-primary", "gpt-4o"},
		{"gpt-4o-mini", "openai-primary", "gpt-4o-mini"},
		{"claude-3-5-sonnet-20241022", "anthropic", "claude-3-5-sonnet"},
		{"deepseek-chat", "deepseek", "deepseek-chat"},
		{"", "", ""},
	}
	fakePrompts = []string{
		"Summarise the incident report in three bullet points.",
		"Translate 'good morning' to Portuguese.",
		"Write a haiku about load balancers.",
		"Explain circuit breakers to a new engineer.",
	}
)

// logEntry is the wire shape of a request log, shared by the list and detail endpoints
type logEntry struct {
	ActualModelName  string  `json:"actualModelName,omitempty"`
	Cost             float64 `json:"cost"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	ErrorMessage     string  `json:"errorMessage,omitempty"`
	FirstTokenMs     int64   `json:"firstTokenMs"`
	FirstTokenTime   int64   `json:"firstTokenTime,omitempty"`
	ID               int64   `json:"id"`
	InputTokens      int64   `json:"inputTokens"`
	IsStream         bool    `json:"isStream,omitempty"`
	OutputTokens     int64   `json:"outputTokens"`
	ProviderID       int64   `json:"providerId,omitempty"`
	ProviderName     string  `json:"providerName,omitempty"`
	RequestContent   string  `json:"requestContent,omitempty"`
	RequestID        string  `json:"requestId,omitempty"`
	RequestModelName string  `json:"requestModelName,omitempty"`
	RequestTime      int64   `json:"requestTime"`
	RequestType      string  `json:"requestType,omitempty"`
	ResponseContent  string  `json:"responseContent,omitempty"`
	RetryCount       int     `json:"retryCount"`
	Status           string  `json:"status"`
	TotalTimeMs      int64   `json:"totalTimeMs,omitempty"`
}

// summary strips the fields only the detail endpoint returns
func (e logEntry) summary() logEntry {
	return logEntry{
		ActualModelName:  e.ActualModelName,
		Cost:             e.Cost,
		FirstTokenMs:     e.FirstTokenMs,
		ID:               e.ID,
		InputTokens:      e.InputTokens,
		OutputTokens:     e.OutputTokens,
		ProviderName:     e.ProviderName,
		RequestModelName: e.RequestModelName,
		RequestTime:      e.RequestTime,
		RetryCount:       e.RetryCount,
		Status:           e.Status,
	}
}

// generateLogs returns n entries, newest first, deterministic for a given seed
func generateLogs(n int, seed uint64, now time.Time) []logEntry {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	entries := make([]logEntry, 0, n)

	for i := 0; i < n; i++ {
		model := fakeModels[rng.IntN(len(fakeModels))]
		prompt := fakePrompts[rng.IntN(len(fakePrompts))]
		requestTime := now.Add(-time.Duration(i*37) * time.Second)
		in := int64(20 + rng.IntN(2000))
		out := int64(rng.IntN(1500))
		firstToken := int64(80 + rng.IntN(1200))

		entry := logEntry{
			ActualModelName:  model.actual,
			CreatedAt:        requestTime.Format("2006-01-02T15:04:05"),
			FirstTokenMs:     firstToken,
			FirstTokenTime:   requestTime.UnixMilli() + firstToken,
			ID:               snowflakeBase + int64(n-i),
			InputTokens:      in,
			IsStream:         rng.IntN(2) == 0,
			OutputTokens:     out,
			ProviderID:       int64(1 + rng.IntN(4)),
			ProviderName:     model.provider,
			RequestID:        fmt.Sprintf("req-%08x", rng.Uint32()),
			RequestModelName: model.request,
			RequestTime:      requestTime.Unix(),
			RequestType:      "chat.completions",
			RetryCount:       rng.IntN(3),
			Status:           "SUCCESS",
			TotalTimeMs:      firstToken + int64(rng.IntN(4000)),
		}
		entry.Cost = float64(in+out) * 0.000002

		request, _ := json.Marshal(map[string]any{
			"model":    model.request,
			"messages": []map[string]string{{"role": "user", "content": prompt}},
			"stream":   entry.IsStream,
		})
		entry.RequestContent = string(request)

		if rng.IntN(7) == 0 {
			entry.Status = "FAIL"
			entry.OutputTokens = 0
			entry.ErrorMessage = "upstream provider returned 529: overloaded"
		} else {
			response, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": "ok"}}},
				"usage":   map[string]int64{"prompt_tokens": in, "completion_tokens": out},
			})
			entry.ResponseContent = string(response)
		}

		entries = append(entries, entry)
	}
	return entries
}
