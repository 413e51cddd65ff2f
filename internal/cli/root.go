// internal/cli/root.go
package gpuzip

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simani23/gpu-zip/internal/appconfig"
	"github.com/simani23/gpu-zip/internal/logging"
)

var (
	cfgFile       string
	loadedFile    string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:           "gpuzip",
	Short:         "gpuzip - timing characterization for GPU compression side-channel experiments",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(cmd); err != nil {
			return err
		}

		// 2) If the user did NOT set a flag, copy the config value into the
		//    flag so both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "no-color"} {
			flag := cmd.Flags().Lookup(name)
			if flag == nil || cmd.Flags().Changed(name) {
				continue
			}
			_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(flagKeys[name])))
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfg.ConfigPath = loadedFile
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.LogEvent("gpuzip %s started (config=%q)", cmd.CommandPath(), loadedFile)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// flagKeys maps persistent flag names to their viper keys.
var flagKeys = map[string]string{
	"debug":     "debug",
	"logFile":   "logFile",
	"sigma":     "sigma",
	"unit":      "unit",
	"frequency": "frequency",
	"no-color":  "noColor",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "append log output to this file")
	rootCmd.PersistentFlags().Float64("sigma", 0, "outlier cut-off in standard deviations (0 keeps the default of 4)")
	rootCmd.PersistentFlags().String("unit", "", "sample unit: cycles, us or ms")
	rootCmd.PersistentFlags().Float64("frequency", 0, "GPU clock frequency in GHz, required for us and ms")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable coloured output")

	// Bind flags to Viper keys (flags override config)
	for name, key := range flagKeys {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
}

// ensureConfigLoaded reads the config and sets safe defaults. Without
// --config the default file is used, then the legacy config.json, and
// missing both is fine; a missing file named with --config is an error.
func ensureConfigLoaded(cmd *cobra.Command) error {
	viper.SetDefault("debug", false)
	viper.SetDefault("noColor", false)
	viper.SetDefault("plots", false)

	loadedFile = ""
	requested := ""
	if cmd.Flags().Changed("config") {
		requested = cfgFile
	}
	path, err := appconfig.Locate(requested)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loadedFile = viper.ConfigFileUsed()
	return nil
}

// GetConfig returns the merged configuration of the running command.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}
