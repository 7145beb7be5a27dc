package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spigell/resume-extractor/internal/ai"
	"github.com/spigell/resume-extractor/internal/ai/gemini"
	"github.com/spigell/resume-extractor/internal/ai/huggingface"
	"github.com/spigell/resume-extractor/internal/document"
	"github.com/spigell/resume-extractor/internal/extraction"
	"github.com/spigell/resume-extractor/internal/logger"
	"github.com/spigell/resume-extractor/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"

	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume.pdf | directory]",
	Short: "Extract candidate details from a PDF resume",
	Long: `Extract candidate details from a PDF resume.

When a directory or no argument is given, the PDF files found there are offered for selection.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(extract(cmd, args))
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", OutputText, "output format: text, json or yaml")
	viper.BindPFlag("output", extractCmd.Flags().Lookup("output"))
}

// extract runs a single extraction and returns the process exit code.
func extract(cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.AI == nil || config.Extraction == nil {
		logger.Fatal("config is required")
	}

	output := strings.ToLower(strings.TrimSpace(viper.GetString("output")))
	if output != OutputText && output != OutputJSON && output != OutputYAML {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	path, err := resolveDocument(args)
	if err != nil {
		logger.Fatal("choosing a resume", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building a text generator", zap.Error(err))
	}

	extractor, err := extraction.New(document.NewReader(logger), generator, extraction.Config{
		Params: ai.Params{
			MaxTokens:   config.Extraction.MaxNewTokens,
			Temperature: config.Extraction.Temperature,
		},
		MaxTextChars: config.Extraction.MaxTextChars,
		MaxLogLength: config.AI.MaxLogLength,
	}, logger)
	if err != nil {
		logger.Fatal("building an extractor", zap.Error(err))
	}

	logger.Info("starting the extraction", zap.String("version", version), zap.String("document", path))

	result, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("extraction failed", zap.Error(err))
		fmt.Println(extraction.Describe(err))
		return 1
	}

	switch output {
	case OutputJSON:
		data, err := result.JSON()
		if err != nil {
			logger.Error("rendering the record", zap.Error(err))
			return 1
		}
		fmt.Println(string(data))
	case OutputYAML:
		data, err := result.YAML()
		if err != nil {
			logger.Error("rendering the record", zap.Error(err))
			return 1
		}
		fmt.Print(string(data))
	default:
		fmt.Println(result.Text())
	}

	return 0
}

// resolveDocument returns the PDF to process. Directories are listed and the user picks a file.
func resolveDocument(args []string) (string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	info, err := os.Stat(target)
	if err != nil {
		// Missing files are reported by the reader in the usual format.
		if errors.Is(err, os.ErrNotExist) && len(args) > 0 {
			return target, nil
		}
		return "", err
	}

	if !info.IsDir() {
		return target, nil
	}

	candidates, err := findPDFs(target)
	if err != nil {
		return "", err
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no pdf files found in %s", target)
	}

	filePrompt := promptui.Select{
		Label: "Choose a resume and press ENTER",
		Items: candidates,
	}

	_, selected, err := filePrompt.Run()
	if err != nil {
		return "", err
	}

	return filepath.Join(target, selected), nil
}

func findPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	var (
		generator ai.Generator
		err       error
	)

	switch provider {
	case "", ProviderHuggingFace:
		generator, err = newHuggingFace(cfg, logger)
	case ProviderGemini:
		generator, err = newGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", generator.Provider()),
		zap.String("model", generator.Model()),
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	return ai.WithRetries(generator, ai.RetryPolicy{MaxRetries: cfg.MaxRetries}, genLogger), nil
}

func newHuggingFace(cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	hf := cfg.HuggingFace
	if hf == nil {
		hf = &HuggingFaceConfig{}
	}

	token, err := secrets.Load(secrets.Source{
		Name:  "hugging face token",
		File:  hf.TokenFile,
		Value: hf.Token,
		Env:   "HF_TOKEN",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.huggingface.token-file or HF_TOKEN)", err)
	}

	client, err := huggingface.New(logger, token, hf.Model, hf.Timeout)
	if err != nil {
		return nil, err
	}

	if endpoint := strings.TrimSpace(hf.Endpoint); endpoint != "" {
		client.APIURL = endpoint
	}

	client.UserAgent = fmt.Sprintf("%s/%s", app, version)

	return client, nil
}

func newGemini(ctx context.Context, cfg *AIConfig) (ai.Generator, error) {
	g := cfg.Gemini
	if g == nil {
		g = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  g.APIKeyFile,
		Value: g.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, g.Model)
}
