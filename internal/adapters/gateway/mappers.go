package gateway

import (
	"time"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// Placeholders shown when the gateway omits a model or provider
const (
	unknownModel = "Unknown"
	missingValue = "-"
)

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func unixSeconds(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func parseCreatedAt(s string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func recordToDomain(dto logRecordDTO) domain.LogRecord {
	return domain.LogRecord{
		ActualModel:  orDefault(dto.ActualModelName, missingValue),
		Cost:         dto.Cost,
		FirstTokenMs: dto.FirstTokenMs,
		ID:           string(dto.ID),
		InputTokens:  dto.InputTokens,
		OutputTokens: dto.OutputTokens,
		ProviderName: orDefault(dto.ProviderName, missingValue),
		RequestModel: orDefault(dto.RequestModelName, unknownModel),
		RequestTime:  unixSeconds(dto.RequestTime),
		RetryCount:   dto.RetryCount,
		Status:       dto.Status,
	}
}

func pageToDomain(dto logPageDTO) domain.LogPage {
	records := make([]domain.LogRecord, 0, len(dto.Records))
	for _, r := range dto.Records {
		records = append(records, recordToDomain(r))
	}
	return domain.LogPage{
		Current: dto.Current,
		Pages:   dto.Pages,
		Records: records,
		Size:    dto.Size,
		Total:   dto.Total,
	}
}

func detailToDomain(dto logDetailDTO) domain.LogDetail {
	return domain.LogDetail{
		ActualModel:     orDefault(dto.ActualModelName, missingValue),
		Cost:            dto.Cost,
		CreatedAt:       parseCreatedAt(dto.CreatedAt),
		ErrorMessage:    dto.ErrorMessage,
		FirstTokenMs:    dto.FirstTokenMs,
		FirstTokenTime:  dto.FirstTokenTime,
		ID:              string(dto.ID),
		InputTokens:     dto.InputTokens,
		IsStream:        dto.IsStream,
		OutputTokens:    dto.OutputTokens,
		ProviderID:      dto.ProviderID,
		ProviderName:    orDefault(dto.ProviderName, missingValue),
		RequestContent:  dto.RequestContent,
		RequestID:       dto.RequestID,
		RequestModel:    orDefault(dto.RequestModelName, unknownModel),
		RequestTime:     unixSeconds(dto.RequestTime),
		RequestType:     dto.RequestType,
		ResponseContent: dto.ResponseContent,
		RetryCount:      dto.RetryCount,
		Status:          dto.Status,
		TotalTimeMs:     dto.TotalTimeMs,
	}
}
