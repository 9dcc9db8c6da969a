package utils

import (
	"fmt"
	"time"
)

// ParseDate valida uma data YYYY-MM-DD; vazio retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}

	return &date, nil
}
