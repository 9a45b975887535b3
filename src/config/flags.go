package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by every check command.
const (
	FlagConfig       = "config"
	FlagHost         = "host"
	FlagPort         = "port"
	FlagToken        = "token"
	FlagVerifyTLS    = "verify-tls"
	FlagTimeout      = "timeout"
	FlagPageSize     = "page-size"
	FlagCriticalDays = "critical-days"
	FlagWorkers      = "workers"
)

// RegisterFlags adds the connection and threshold flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP(FlagConfig, "c", "", "Path to a YAML config file")
	fs.String(FlagHost, "", "HYCU controller hostname or IP (env "+EnvHost+")")
	fs.Int(FlagPort, d.Port, "HYCU REST API port")
	fs.String(FlagToken, "", "HYCU API bearer token (env "+EnvToken+")")
	fs.Bool(FlagVerifyTLS, d.VerifyTLS, "Verify the controller TLS certificate")
	fs.Duration(FlagTimeout, d.Timeout, "Timeout for each API request")
	fs.Int(FlagPageSize, d.PageSize, "Entities requested per inventory page")
	fs.Int(FlagCriticalDays, d.CriticalDays, "Backups older than this many days are CRITICAL")
	fs.Int(FlagWorkers, d.Workers, "Concurrent backup history requests")
}

// FromFlags builds the run configuration from the config file and any flag the
// user set explicitly, flags winning. The environment only supplies host and
// token when neither the file nor a flag did.
func FromFlags(fs *pflag.FlagSet, lookupEnv func(string) (string, bool)) (Config, error) {
	path, _ := fs.GetString(FlagConfig)
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if fs.Changed(FlagHost) {
		cfg.Host, _ = fs.GetString(FlagHost)
	}
	if fs.Changed(FlagToken) {
		cfg.Token, _ = fs.GetString(FlagToken)
	}
	cfg = cfg.ApplyEnv(lookupEnv)
	if fs.Changed(FlagPort) {
		cfg.Port, _ = fs.GetInt(FlagPort)
	}
	if fs.Changed(FlagVerifyTLS) {
		cfg.VerifyTLS, _ = fs.GetBool(FlagVerifyTLS)
	}
	if fs.Changed(FlagTimeout) {
		cfg.Timeout, _ = fs.GetDuration(FlagTimeout)
	}
	if fs.Changed(FlagPageSize) {
		cfg.PageSize, _ = fs.GetInt(FlagPageSize)
	}
	if fs.Changed(FlagCriticalDays) {
		cfg.CriticalDays, _ = fs.GetInt(FlagCriticalDays)
	}
	if fs.Changed(FlagWorkers) {
		cfg.Workers, _ = fs.GetInt(FlagWorkers)
	}
	return cfg, cfg.Validate()
}
