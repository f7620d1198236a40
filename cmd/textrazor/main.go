// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the textrazor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textrazor-go/internal/secrets"
	"github.com/pdiddy/textrazor-go/pkg/textrazor"
	"github.com/pdiddy/textrazor-go/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// cliCfg is the decoded config file, populated by initConfig before any
// command runs. Flags and environment variables override its fields.
var cliCfg types.CLIConfig

// rootCmd is the base command for the textrazor CLI.
var rootCmd = &cobra.Command{
	Use:   "textrazor",
	Short: "Analyze text with the TextRazor API",
	Long: `textrazor submits documents to the TextRazor natural language analysis
service and prints the extracted annotations: entities, topics, relations,
dependency trees, and matches of custom rules and classifiers.

Management subcommands maintain the account's custom entity dictionaries and
classifiers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./textrazor.yaml or ~/.config/textrazor/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "TextRazor API key (overrides config and secrets)")
	rootCmd.PersistentFlags().Bool("secure", false, "use the HTTPS endpoint")
	rootCmd.PersistentFlags().Bool("no-compress", false, "disable gzip on requests and responses")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textrazor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textrazor"))
		}
	}

	viper.SetEnvPrefix("TEXTRAZOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	cfg, err := loadCLIConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		return
	}
	cliCfg = cfg
}

// loadCLIConfig decodes the viper state into the typed CLI config.
func loadCLIConfig(v *viper.Viper) (types.CLIConfig, error) {
	var cfg types.CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.CLIConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// apiKey resolves the key to use: flag, then TEXTRAZOR_API_KEY, then the
// config file, then the secrets directory.
func apiKey(cmd *cobra.Command) string {
	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		return key
	}
	if key := viper.GetString("api_key"); key != "" {
		return key
	}
	if cliCfg.Client.APIKey != "" {
		return cliCfg.Client.APIKey
	}
	return loadedSecrets[secrets.APIKeyFile]
}

// newClient builds a client from the decoded config, with the persistent
// flags taking precedence.
func newClient(cmd *cobra.Command) (*textrazor.Client, error) {
	cc := cliCfg.Client
	if secure, _ := cmd.Flags().GetBool("secure"); secure {
		cc.UseEncryption = true
	}
	if noCompress, _ := cmd.Flags().GetBool("no-compress"); noCompress {
		cc.DisableCompression = true
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cc.Timeout = timeout
	}

	cfg := textrazor.Config{
		APIKey:             apiKey(cmd),
		Endpoint:           cc.Endpoint,
		SecureEndpoint:     cc.SecureEndpoint,
		UseEncryption:      cc.UseEncryption,
		DisableCompression: cc.DisableCompression,
		Timeout:            cc.Timeout,
		UserAgent:          cc.UserAgent,
		MaxRetries:         cc.MaxRetries,
	}
	client, err := textrazor.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (set --api-key, TEXTRAZOR_API_KEY, or .secrets/%s)", err, secrets.APIKeyFile)
	}
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
