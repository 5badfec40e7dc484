// Command resumectl runs the resume parsing pipeline from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"resume-parser/internal/bootstrap"
	"resume-parser/internal/llm"
	"resume-parser/internal/shared/config"
)

// deps are swapped in tests.
type deps struct {
	loadConfig func() config.Config
	newLLM     func(ctx context.Context, cfg config.Config) (llm.Client, string, string, error)
}

func defaultDeps() deps {
	return deps{loadConfig: config.Load, newLLM: bootstrap.BuildLLM}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Resume to profile extraction tools",
		Long:          "resumectl parses PDF, DOCX and TeX resumes into structured profile JSON and manages the parse run database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(d), newSchemaCmd(), newMigrateCmd(d))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
