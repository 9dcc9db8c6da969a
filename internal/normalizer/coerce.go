package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SafeNumber converte valores arbitrários em número; entradas não numéricas ou não finitas
// retornam fallback.
func SafeNumber(val any, fallback float64) float64 {
	switch v := val.(type) {
	case float64:
		return finiteOr(v, fallback)
	case float32:
		return finiteOr(float64(v), fallback)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseNumeric(string(v), fallback)
	case string:
		return parseNumeric(v, fallback)
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return fallback
}

// SafeString converte valores arbitrários em string; nil e tipos compostos retornam fallback.
func SafeString(val any, fallback string) string {
	switch v := val.(type) {
	case string:
		return v
	case nil:
		return fallback
	case json.Number:
		return v.String()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return SafeString(float64(v), fallback)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return fallback
}

func parseNumeric(s string, fallback float64) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return fallback
	}
	return finiteOr(parsed, fallback)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func optionalString(val any) *string {
	s := strings.TrimSpace(SafeString(val, ""))
	if s == "" {
		return nil
	}
	return &s
}
