package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration as YAML.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string       { return "config" }
func (c *ConfigCmd) Aliases() []string  { return nil }
func (c *ConfigCmd) Synopsis() string   { return "Print the effective configuration" }
func (c *ConfigCmd) Usage() string      { return "taskpad config" }
func (c *ConfigCmd) NeedsService() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *pflag.FlagSet) {}

// effectiveConfig is what the config command renders. Durations are
// strings so the output can be pasted back into config.yaml.
type effectiveConfig struct {
	Dir         string `yaml:"dir"`
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	TraceFile   string `yaml:"trace_file,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	LoggedIn    bool   `yaml:"logged_in"`
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	view := effectiveConfig{
		Dir:         cfg.Dir,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout.String(),
		TraceFile:   cfg.TraceFile,
		MetricsAddr: cfg.MetricsAddr,
		LoggedIn:    cfg.HasToken(),
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return exitcode.Success
}
