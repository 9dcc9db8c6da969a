package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador curto de uma execução de sincronização
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}

// NewRowID gera o id de um registro canônico
func NewRowID() string {
	return uuid.NewString()
}
