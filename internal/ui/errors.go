package ui

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

const (
	maxErrorLines  = 2
	errorPrefix    = "Error: "
	truncationMark = "..."
	minErrorWidth  = 10
)

// errorText returns the operator-facing text for an error. AuthError carries its
// own message; everything else uses Error().
func errorText(err error) string {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return err.Error()
}

// formatErrorForDisplay wraps an error to at most maxErrorLines lines of maxWidth,
// prefixed with "Error: " and truncated with "..." when it does not fit
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	words := strings.Fields(errorText(err))
	if len(words) == 0 {
		return errorPrefix + "unknown error"
	}

	width := max(maxWidth, minErrorWidth)
	limit := width - utf8.RuneCountInString(errorPrefix)

	var lines []string
	var line strings.Builder
	consumed := 0
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+n > limit {
			lines = append(lines, line.String())
			line.Reset()
			if len(lines) == maxErrorLines {
				break
			}
			limit = width
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
		consumed++
	}
	if line.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, line.String())
	}

	if consumed < len(words) {
		last := []rune(lines[len(lines)-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep {
			last = last[:max(keep, 0)]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}
