// Package config provides environment lookups and the gameplay tuning file.
package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integer values. Unparseable values yield fallback.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// FromEnv loads the tuning file named by EGGCATCH_TUNING, or the built-in
// defaults when the variable is unset.
func FromEnv() (Tuning, error) {
	path := GetEnv("EGGCATCH_TUNING", "")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
