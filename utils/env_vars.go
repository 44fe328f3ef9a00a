package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envVarType interface {
	string | int | bool | float64 | time.Duration
}

// GetEnv reads an environment variable and converts it to the type of the default value.
// It panics if the variable is set to a value that cannot be converted.
func GetEnv[T envVarType](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnvValue[T](envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid: %s", envVarName, err))
	}
	return value
}

func GetRequiredEnv[T envVarType](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVarName)
	}
	value, err := parseEnvValue[T](envValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: %s", envVarName, err)
	}
	return value
}

func parseEnvValue[T envVarType](envValue string) (T, error) {
	var value T
	switch p := any(&value).(type) {
	case *string:
		*p = envValue
	case *int:
		v, err := strconv.Atoi(envValue)
		if err != nil {
			return value, fmt.Errorf("'%s' is not an integer", envValue)
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(envValue)
		if err != nil {
			return value, fmt.Errorf("'%s' cannot be converted to bool", envValue)
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return value, fmt.Errorf("'%s' is not a number", envValue)
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(envValue)
		if err != nil {
			return value, fmt.Errorf("'%s' is not a duration", envValue)
		}
		*p = v
	}
	return value, nil
}
