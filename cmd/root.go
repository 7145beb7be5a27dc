package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-extractor"
)

type Config struct {
	AI         *AIConfig         `mapstructure:"ai"`
	Extraction *ExtractionConfig `mapstructure:"extraction"`
}

type AIConfig struct {
	Provider     string             `mapstructure:"provider"`
	MaxRetries   int                `mapstructure:"max-retries"`
	MaxLogLength int                `mapstructure:"max-log-length"`
	HuggingFace  *HuggingFaceConfig `mapstructure:"huggingface"`
	Gemini       *GeminiConfig      `mapstructure:"gemini"`
}

type HuggingFaceConfig struct {
	Token     string        `mapstructure:"token" json:"-"`
	TokenFile string        `mapstructure:"token-file"`
	Model     string        `mapstructure:"model"`
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ExtractionConfig struct {
	MaxTextChars int     `mapstructure:"max-text-chars"`
	MaxNewTokens int     `mapstructure:"max-new-tokens"`
	Temperature  float64 `mapstructure:"temperature"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-extractor pulls candidate contact details out of PDF resumes with a language model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-extractor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("ai.provider", "huggingface")
	viper.SetDefault("ai.max-retries", 0)
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("ai.huggingface.token", "")
	viper.SetDefault("ai.huggingface.token-file", "")
	viper.SetDefault("ai.huggingface.model", "HuggingFaceH4/zephyr-7b-beta")
	viper.SetDefault("ai.huggingface.endpoint", "https://api-inference.huggingface.co/models")
	viper.SetDefault("ai.huggingface.timeout", "60s")
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("extraction.max-text-chars", 2000)
	viper.SetDefault("extraction.max-new-tokens", 512)
	viper.SetDefault("extraction.temperature", 0.01)
}

func initConfig() {
	// .env is optional, it only feeds the environment.
	_ = godotenv.Load()

	viper.SetEnvPrefix("RESUME_EXTRACTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The default config file is optional; an explicit one is not.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
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
