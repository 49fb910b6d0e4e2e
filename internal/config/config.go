package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultInventoryURL = "https://dims.ignitetravel.com/IMSXML/RewardsCorpIMS.asmx?wsdl"
	defaultRatesURL     = "https://dims.ignitetravel.com/RMSXML/RateInterfaceService.asmx?wsdl"
	defaultTimeout      = 30 * time.Second
)

type Config struct {
	UserName     string
	PassWord     string
	Token        string
	InventoryURL string
	RatesURL     string
	Timeout      time.Duration
}

type CredentialsError struct {
	missing []string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("credentials are not set: %s", strings.Join(e.missing, ", "))
}

func (e *CredentialsError) Missing() []string {
	return e.missing
}

func IsCredentialsError(err error) *CredentialsError {
	if err == nil {
		return nil
	}

	var credentialsError *CredentialsError

	if errors.As(err, &credentialsError) {
		return credentialsError
	}

	return nil
}

func FromEnv() (*Config, error) {
	conf := &Config{
		UserName:     os.Getenv("DIMS_USERNAME"),
		PassWord:     os.Getenv("DIMS_PASSWORD"),
		Token:        os.Getenv("DIMS_TOKEN"),
		InventoryURL: getEnvOrDefault("DIMS_INVENTORY_URL", defaultInventoryURL),
		RatesURL:     getEnvOrDefault("DIMS_RATES_URL", defaultRatesURL),
		Timeout:      time.Duration(getEnvAsIntOrDefault("DIMS_TIMEOUT_SECONDS", int(defaultTimeout/time.Second))) * time.Second,
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) Validate() error {
	var missing []string

	if c.UserName == "" {
		missing = append(missing, "username")
	}

	if c.PassWord == "" {
		missing = append(missing, "password")
	}

	if c.Token == "" {
		missing = append(missing, "token")
	}

	if len(missing) > 0 {
		return &CredentialsError{missing: missing}
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return defaultValue
}
