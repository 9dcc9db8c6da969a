package utils

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON decodifica números como json.Number para não perder precisão em IDs grandes
var JSON = jsoniter.Config{
	EscapeHTML:             true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()
