package domain

import "time"

// Request log statuses reported by the gateway
const (
	LogStatusFail    = "FAIL"
	LogStatusSuccess = "SUCCESS"
)

// LogRecord is one row of the request log table
type LogRecord struct {
	ActualModel  string
	Cost         float64
	FirstTokenMs int64
	ID           string
	InputTokens  int64
	OutputTokens int64
	ProviderName string
	RequestModel string
	RequestTime  time.Time
	RetryCount   int
	Status       string
}

// Tokens returns the total token count of the request
func (r LogRecord) Tokens() int64 {
	return r.InputTokens + r.OutputTokens
}

// Succeeded reports whether the gateway marked the request successful
func (r LogRecord) Succeeded() bool {
	return r.Status == LogStatusSuccess
}

// LogDetail is the full view of a single request log
type LogDetail struct {
	ActualModel      string
	Cost             float64
	CreatedAt        time.Time
	ErrorMessage     string
	FirstTokenMs     int64
	FirstTokenTime   int64
	ID               string
	InputTokens      int64
	IsStream         bool
	OutputTokens     int64
	ProviderID       int64
	ProviderName     string
	RequestContent   string
	RequestID        string
	RequestModel     string
	RequestTime      time.Time
	RequestType      string
	ResponseContent  string
	RetryCount       int
	Status           string
	TotalTimeMs      int64
}

// Tokens returns the total token count of the request
func (d LogDetail) Tokens() int64 {
	return d.InputTokens + d.OutputTokens
}

// Created returns CreatedAt, falling back to the request time when the gateway omitted it
func (d LogDetail) Created() time.Time {
	if !d.CreatedAt.IsZero() {
		return d.CreatedAt
	}
	return d.RequestTime
}
