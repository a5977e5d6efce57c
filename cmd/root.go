package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "screener"
)

type Config struct {
	Service     *ServiceConfig `mapstructure:"service"`
	Intake      *IntakeConfig  `mapstructure:"intake"`
	Job         *JobConfig     `mapstructure:"job"`
	Watch       *WatchConfig   `mapstructure:"watch"`
	LogFile     string         `mapstructure:"log-file"`
	DownloadDir string         `mapstructure:"download-dir"`
}

type ServiceConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	UserAgent string `mapstructure:"user-agent"`
	TokenFile string `mapstructure:"token-file"`
}

type IntakeConfig struct {
	Dir      string   `mapstructure:"dir"`
	Patterns []string `mapstructure:"patterns"`
}

type JobConfig struct {
	Description     string `mapstructure:"description"`
	DescriptionFile string `mapstructure:"description-file"`
	// RequiredExperience is optional. Zero means no requirement; when
	// AutoExperience is set the value is extracted from the description.
	RequiredExperience int  `mapstructure:"required-experience"`
	AutoExperience     bool `mapstructure:"auto-experience"`
}

type WatchConfig struct {
	SettleSeconds int `mapstructure:"settle-seconds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "screener is a cli for scoring a batch of resumes against a job description via a remote analysis service",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("service.token-file", "SCREENER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SCREENER_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run and watch commands. If there is no
	// config, we can skip initialization.
	if runCmd.CalledAs() == "" && watchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
