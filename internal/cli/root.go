// internal/cli/root.go
package handytools

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mwiater/handytools/internal/appconfig"
	"github.com/mwiater/handytools/internal/logging"
	"github.com/mwiater/handytools/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "handytools",
	Short: "handytools — utility MCP server with schema-validated tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; real environment variables win.
		_ = godotenv.Load()

		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		cfg.HFToken = os.Getenv("HF_TOKEN")
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("timeout", 0, "outbound request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("httpAddr", "", "listen address for the HTTP transport")
	rootCmd.PersistentFlags().String("httpToken", "", "bearer token protecting the HTTP transport")
	rootCmd.PersistentFlags().String("geocodeUrl", "", "geocoding service base URL override")
	rootCmd.PersistentFlags().String("forecastUrl", "", "forecast service base URL override")
	rootCmd.PersistentFlags().String("inferenceUrl", "", "inference router base URL override")

	for _, name := range []string{"debug", "timeout", "logFile", "httpAddr", "httpToken", "geocodeUrl", "forecastUrl", "inferenceUrl"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigFile(appconfig.DefaultConfigPath)
}

// ensureConfigLoaded reads the config file, treating its absence as fine.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{HFToken: os.Getenv("HF_TOKEN")}
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// newServer builds the MCP server from the active configuration.
func newServer() (*server.Server, error) {
	return server.New(GetConfig())
}
