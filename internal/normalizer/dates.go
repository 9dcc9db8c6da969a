package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:$|[T\s])`)
	slashDatePattern   = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	compactDatePattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	numericPattern     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Layouts aceitos quando a entrada não casa com nenhum dos formatos de data conhecidos
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -0700",
	time.DateOnly,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// CostMicrosToLocal converte valores em micros (Google Ads) para a moeda local
func CostMicrosToLocal(micros any) float64 {
	return SafeNumber(micros, 0) / 1_000_000
}

// ParseDate normaliza datas ISO, com barras ou compactas para YYYY-MM-DD.
// Datas inexistentes no calendário (ex.: 31 de fevereiro) retornam string vazia.
func ParseDate(input string) string {
	value := strings.TrimSpace(input)
	if value == "" {
		return ""
	}

	for _, pattern := range []*regexp.Regexp{isoDatePattern, slashDatePattern, compactDatePattern} {
		if match := pattern.FindStringSubmatch(value); match != nil {
			return formatDateParts(match[1], match[2], match[3])
		}
	}

	parsed, ok := parseTime(value)
	if !ok {
		return ""
	}
	return parsed.UTC().Format(time.DateOnly)
}

// ParseTimestamp converte timestamps numéricos ou textuais em milissegundos Unix.
// Entradas que não podem ser interpretadas retornam 0.
func ParseTimestamp(input any) int64 {
	switch v := input.(type) {
	case string:
		value := strings.TrimSpace(v)
		if value == "" {
			return 0
		}
		if numericPattern.MatchString(value) {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
				return 0
			}
			return normalizeEpoch(n)
		}
		parsed, ok := parseTime(value)
		if !ok {
			return 0
		}
		return parsed.UnixMilli()
	case nil, bool:
		return 0
	}

	n := SafeNumber(input, math.NaN())
	if math.IsNaN(n) {
		return 0
	}
	return normalizeEpoch(n)
}

// normalizeEpoch classifica o epoch pela magnitude: segundos, milissegundos, micro ou nanossegundos
func normalizeEpoch(value float64) int64 {
	abs := math.Abs(value)
	switch {
	case abs == 0:
		return 0
	case abs < 1e11:
		return int64(math.Trunc(value * 1000))
	case abs >= 1e18:
		return int64(math.Trunc(value / 1_000_000))
	case abs >= 1e15:
		return int64(math.Trunc(value / 1_000))
	}
	return int64(math.Trunc(value))
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDateParts(yearStr, monthStr, dayStr string) string {
	year, errY := strconv.Atoi(yearStr)
	month, errM := strconv.Atoi(monthStr)
	day, errD := strconv.Atoi(dayStr)
	if errY != nil || errM != nil || errD != nil {
		return ""
	}

	candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if candidate.Year() != year || int(candidate.Month()) != month || candidate.Day() != day {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
