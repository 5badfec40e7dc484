package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/parsing"
)

func newParseCmd(d deps) *cobra.Command {
	var (
		model     string
		repairs   int
		minChars  int
		printText bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract a profile from a resume file",
		Long:  "Runs text extraction, the model call and schema validation locally and prints {profile, meta} JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}

			cfg := d.loadConfig()
			if model != "" {
				cfg.LLMModel = model
			}
			if cmd.Flags().Changed("repair-attempts") {
				cfg.LLMRepairAttempts = repairs
			}
			if cmd.Flags().Changed("min-chars") {
				cfg.MinTextChars = minChars
			}

			name := filepath.Base(path)
			contentType := mime.TypeByExtension(filepath.Ext(name))

			if printText {
				kind := extract.DetectKind(name, contentType)
				text, err := extract.New().Extract(cmd.Context(), data, kind)
				if err != nil {
					return fmt.Errorf("extract %s: %w", kind, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}

			ctx := cmd.Context()
			client, provider, modelName, err := d.newLLM(ctx, cfg)
			if err != nil {
				return err
			}
			if closer, ok := client.(interface{ Close() error }); ok {
				defer closer.Close()
			}

			svc := parsing.NewService(extract.New(), llm.WithRetries(client, cfg.LLMTransportRetries), nil)
			svc.Provider = provider
			svc.Model = modelName
			svc.MinTextChars = cfg.MinTextChars
			svc.LLMTimeout = cfg.LLMTimeout
			svc.RepairAttempts = cfg.LLMRepairAttempts

			res, err := svc.Parse(ctx, parsing.Upload{FileName: name, ContentType: contentType, Data: data})
			if err != nil {
				var outErr *parsing.ModelOutputError
				if errors.As(err, &outErr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "raw model output:\n%s\n", outErr.Raw)
				}
				return fmt.Errorf("%s: %w", parsing.Reason(err), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (overrides LLM_MODEL)")
	cmd.Flags().IntVar(&repairs, "repair-attempts", 0, "Re-prompt attempts after schema failures")
	cmd.Flags().IntVar(&minChars, "min-chars", parsing.DefaultMinTextChars, "Minimum extracted characters")
	cmd.Flags().BoolVar(&printText, "text", false, "Print the extracted text and skip the model call")
	return cmd
}
