package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spigell/resume-extractor/internal/candidate"
	"github.com/spigell/resume-extractor/internal/document"
	"github.com/spigell/resume-extractor/internal/extraction"
	"github.com/spigell/resume-extractor/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [resume.pdf]",
	Short: "Print the extraction schema, or the full prompt for a resume",
	Long: `Print the JSON schema the model is asked to fill.

When a resume is given, the prompt that would be sent for it is printed instead. No backend is called.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showSchema(args)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func showSchema(args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	schema := candidate.DefaultSchema()

	if len(args) == 0 {
		pretty, err := json.MarshalIndent(schema.JSONSchema(), "", "  ")
		if err != nil {
			logger.Fatal("rendering the schema", zap.Error(err))
		}
		fmt.Println(string(pretty))
		return
	}

	signals, err := document.NewReader(logger).Read(context.Background(), args[0])
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err), zap.String("hint", extraction.Describe(err)))
	}

	fmt.Println(extraction.BuildPrompt(signals.Text(), schema, viper.GetInt("extraction.max-text-chars")))
}
