package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"discsift/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the sample configuration and show what it sets",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			// Reload what was written so the summary reflects the file itself.
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("sample config at %s does not load: %w", target, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			describeConfig(out, cfg)
			if cfg.Detection.PreferredLanguage == "" {
				fmt.Fprintf(out, "Language: inferred from audio tracks (set detection.preferred_language or %s to override)\n", config.LanguageEnvVar)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTarget resolves --path, falling back to the default config location.
func initTarget(flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	if flagValue == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			describeConfig(out, cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// describeConfig prints the settings that shape a detection run.
func describeConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "Data directory: %s\n", cfg.Paths.DataDir)
	fmt.Fprintf(out, "Log directory: %s\n", cfg.Paths.LogDir)
	fmt.Fprintf(out, "Feature length: %.0f%% of baseline, over %s, %d+ chapters\n",
		cfg.Detection.FeatureLengthRatio*100,
		cfg.Detection.MinFeatureLength(),
		cfg.Detection.MinMainFeatureChapters,
	)
	switch {
	case !cfg.History.Enabled:
		fmt.Fprintln(out, "History: disabled")
	case cfg.History.MaxEntries == 0:
		fmt.Fprintf(out, "History: %s (unlimited)\n", cfg.HistoryPath())
	default:
		fmt.Fprintf(out, "History: %s (keeps %d runs)\n", cfg.HistoryPath(), cfg.History.MaxEntries)
	}
}
