// Package auth stores the bearer token of the remote catalog API.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/yogaland/yogaland/constant"
	"github.com/zalando/go-keyring"
)

// EnvToken overrides the keyring, for CI and containers without a secret service.
const EnvToken = "YOGALAND_CATALOG_TOKEN"

const account = "catalog-token"

// ErrNoToken means neither the environment nor the keyring hold a token.
var ErrNoToken = errors.New("no catalog token")

// Source tells where a token came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// SetToken stores token in the system keyring.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(constant.App, account, token)
}

// Token returns the token to send, preferring the environment.
func Token() (string, Source, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, SourceEnv, nil
	}

	token, err := keyring.Get(constant.App, account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", "", ErrNoToken
	case err != nil:
		return "", "", err
	}
	return token, SourceKeyring, nil
}

// DeleteToken forgets the stored token. Deleting a missing token is not an error.
func DeleteToken() error {
	if err := keyring.Delete(constant.App, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
