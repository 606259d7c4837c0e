package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// envelope is the response wrapper used by every gateway endpoint
type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e envelope) hasData() bool {
	return len(e.Data) > 0 && !bytes.Equal(e.Data, []byte("null"))
}

// flexID accepts a JSON number or string. Snowflake ids exceed float64 precision,
// so numbers are kept as their literal text.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id must be an integer: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type loginRequest struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginResponse struct {
	ExpiresIn int64  `json:"expiresIn"`
	Token     string `json:"token"`
	Username  string `json:"username"`
}

type profileRequest struct {
	OriginalPassword string `json:"originalPassword,omitempty"`
	Password         string `json:"password,omitempty"`
	Username         string `json:"username"`
}

type logRecordDTO struct {
	ActualModelName  string  `json:"actualModelName"`
	Cost             float64 `json:"cost"`
	FirstTokenMs     int64   `json:"firstTokenMs"`
	ID               flexID  `json:"id"`
	InputTokens      int64   `json:"inputTokens"`
	OutputTokens     int64   `json:"outputTokens"`
	ProviderName     string  `json:"providerName"`
	RequestModelName string  `json:"requestModelName"`
	RequestTime      int64   `json:"requestTime"`
	RetryCount       int     `json:"retryCount"`
	Status           string  `json:"status"`
}

type logPageDTO struct {
	Current int            `json:"current"`
	Pages   int            `json:"pages"`
	Records []logRecordDTO `json:"records"`
	Size    int            `json:"size"`
	Total   int            `json:"total"`
}

type logDetailDTO struct {
	ActualModelName  string  `json:"actualModelName"`
	Cost             float64 `json:"cost"`
	CreatedAt        string  `json:"createdAt"`
	ErrorMessage     string  `json:"errorMessage"`
	FirstTokenMs     int64   `json:"firstTokenMs"`
	FirstTokenTime   int64   `json:"firstTokenTime"`
	ID               flexID  `json:"id"`
	InputTokens      int64   `json:"inputTokens"`
	IsStream         bool    `json:"isStream"`
	OutputTokens     int64   `json:"outputTokens"`
	ProviderID       int64   `json:"providerId"`
	ProviderName     string  `json:"providerName"`
	RequestContent   string  `json:"requestContent"`
	RequestID        string  `json:"requestId"`
	RequestModelName string  `json:"requestModelName"`
	RequestTime      int64   `json:"requestTime"`
	RequestType      string  `json:"requestType"`
	ResponseContent  string  `json:"responseContent"`
	RetryCount       int     `json:"retryCount"`
	Status           string  `json:"status"`
	TotalTimeMs      int64   `json:"totalTimeMs"`
}
