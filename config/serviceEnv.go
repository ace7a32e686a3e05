package config

import (
	"os"

	"github.com/go-playground/validator/v10"
)

// ServiceEnv is the environment the refresh service requires to run.
// Validated once at startup so misconfiguration fails fast and loudly
// instead of surfacing as a connect retry loop.
type ServiceEnv struct {
	Port       string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBName     string `validate:"required"`
}

var validate = validator.New()

func LoadServiceEnv() (*ServiceEnv, error) {
	env := &ServiceEnv{
		Port:       os.Getenv("PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBName:     os.Getenv("DB_NAME"),
	}
	if env.Port == "" {
		env.Port = "8080"
	}
	if err := validate.Struct(env); err != nil {
		return nil, err
	}
	return env, nil
}
