package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	AppUrl              string
	RequestLoggingLevel string
	DefaultTimeout      time.Duration
	ExportTimeout       time.Duration
	EnablePrometheus    bool
}
