package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. A missing default .env is not an error.
func LoadEnv(files ...string) (bool, error) {
	err := godotenv.Load(files...)
	if err == nil {
		return true, nil
	}
	if len(files) == 0 && errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
