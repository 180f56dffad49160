package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDate = errors.New("data vazia")

// dateLayouts são os formatos aceitos vindos dos drivers e de arquivos
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02.01.2006",
}

// ParseDate converte texto em data, tentando os formatos conhecidos em ordem
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, ErrEmptyDate
	}

	var lastErr error
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

// TruncateToDate descarta hora e fuso, mantendo o dia do calendário em UTC
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
