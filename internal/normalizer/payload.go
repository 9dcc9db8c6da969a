package normalizer

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// Payload é uma linha bruta de plataforma com leitura permissiva de campos.
// Candidatos são nomes de campo ou caminhos separados por ponto ("metrics.spend");
// o primeiro valor não nulo encontrado vence.
type Payload map[string]any

// AsPayload trata qualquer entrada que não seja objeto como registro vazio
func AsPayload(raw any) Payload {
	switch v := raw.(type) {
	case Payload:
		return v
	case domain.RawRow:
		return Payload(v)
	case map[string]any:
		return Payload(v)
	}
	return Payload{}
}

// Lookup retorna o primeiro valor não nulo entre os candidatos
func (p Payload) Lookup(candidates ...string) (any, bool) {
	for _, candidate := range candidates {
		if v := p.path(strings.Split(candidate, ".")); v != nil {
			return v, true
		}
	}
	return nil, false
}

func (p Payload) path(segments []string) any {
	var current any = map[string]any(p)
	for _, segment := range segments {
		record, ok := asMap(current)
		if !ok {
			return nil
		}
		current = record[segment]
	}
	return current
}

func (p Payload) Value(candidates ...string) any {
	v, _ := p.Lookup(candidates...)
	return v
}

// Str lê uma string com fallback vazio
func (p Payload) Str(candidates ...string) string {
	return SafeString(p.Value(candidates...), "")
}

// OptStr lê uma string aparada; vazia vira nil
func (p Payload) OptStr(candidates ...string) *string {
	return optionalString(p.Value(candidates...))
}

// Num lê um número com fallback 0
func (p Payload) Num(candidates ...string) float64 {
	return SafeNumber(p.Value(candidates...), 0)
}

// OptNum lê um número opcional; ausente, vazio ou não finito vira nil
func (p Payload) OptNum(candidates ...string) *float64 {
	v := p.Value(candidates...)
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	n := SafeNumber(v, math.NaN())
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

// Timestamp lê um timestamp em milissegundos; tipos que não são texto ou número viram 0
func (p Payload) Timestamp(candidates ...string) int64 {
	switch v := p.Value(candidates...).(type) {
	case string, json.Number, float64, float32, int, int64:
		return ParseTimestamp(v)
	}
	return 0
}

func (p Payload) OptTimestamp(candidates ...string) *int64 {
	ts := p.Timestamp(candidates...)
	if ts == 0 {
		return nil
	}
	return &ts
}

// List lê um campo de lista; qualquer outro tipo retorna nil
func (p Payload) List(candidates ...string) []any {
	list, _ := p.Value(candidates...).([]any)
	return list
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Payload:
		return m, true
	case domain.RawRow:
		return m, true
	}
	return nil, false
}

// normalizeResourceID extrai o último segmento de nomes de recurso como "customers/123"
func normalizeResourceID(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

func floatPtr(v float64) *float64 {
	return &v
}
