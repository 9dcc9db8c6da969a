package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound     = errors.New("connected account not found")
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrMissingRefreshToken = errors.New("no refresh token available")
	ErrTokenExpired        = errors.New("access token expired and platform has no refresh flow")
	ErrPlatformMismatch    = errors.New("connected account platform mismatch")
	ErrUnsupportedLevel    = errors.New("unsupported resource level")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrSyncInProgress      = errors.New("account sync already in progress")
	ErrLeadNotFound        = errors.New("lead not found")
)

// AuthError indica credencial ausente ou inválida; é fatal para a execução atual
type AuthError struct {
	CredentialID string
	Err          error
}

func (e *AuthError) Error() string {
	if e.CredentialID != "" {
		return fmt.Sprintf("auth error for credential %s: %s", e.CredentialID, e.Err.Error())
	}
	return fmt.Sprintf("auth error: %s", e.Err.Error())
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError é uma resposta não-2xx (ou envelope de erro) de uma plataforma
type FetchError struct {
	Platform  Platform
	Operation string
	Status    int
	Message   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed (%d): %s", e.Operation, e.Status, e.Message)
}

// UpsertError é uma falha de escrita no banco que aborta as linhas restantes da chamada
type UpsertError struct {
	Table string
	Err   error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert into %s failed: %s", e.Table, e.Err.Error())
}

func (e *UpsertError) Unwrap() error {
	return e.Err
}
