package models

import "time"

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	LogLevel string          `yaml:"log_level"`
	Storage  MStorageConfig  `yaml:"storage"`
	Query    MQueryConfig    `yaml:"query"`
	Analysis MAnalysisConfig `yaml:"analysis"`
	Server   MServerConfig   `yaml:"server"`
	Metrics  MMetricsConfig  `yaml:"metrics"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	TablePrefix        string `yaml:"table_prefix"`
	QueryTimeout       int    `yaml:"query_timeout"` // seconds
}

// Timeout returns the repository deadline for one fetch.
func (s MStorageConfig) Timeout() time.Duration {
	return time.Duration(s.QueryTimeout) * time.Second
}

// MQueryConfig selects which check results feed the analysis.
type MQueryConfig struct {
	HostName       string `yaml:"host_name"`
	ServiceName    string `yaml:"service_name"`
	ServicePattern string `yaml:"service_pattern"` // SQL LIKE, optional
	LookbackWeeks  int    `yaml:"lookback_weeks"`
	WindowMinutes  int    `yaml:"window_minutes"`
	Timezone       string `yaml:"timezone"`
}

// Malformed-sample policies for MAnalysisConfig.OnMalformed.
const (
	MalformedAbort = "abort"
	MalformedSkip  = "skip"
)

type MAnalysisConfig struct {
	OnMalformed     string  `yaml:"on_malformed"` // "abort" or "skip"
	HolidayCalendar string  `yaml:"holiday_calendar"`
	WarnSigma       float64 `yaml:"warn_sigma"`
	CritSigma       float64 `yaml:"crit_sigma"`
}

type MServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type MMetricsConfig struct {
	TextfilePath string `yaml:"textfile_path"`
}

// Location resolves Timezone; empty or "Local" is the process zone.
func (q MQueryConfig) Location() (*time.Location, error) {
	if q.Timezone == "" || q.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(q.Timezone)
}

// Window returns the daily slot length.
func (q MQueryConfig) Window() time.Duration {
	return time.Duration(q.WindowMinutes) * time.Minute
}
