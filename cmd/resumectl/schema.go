package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"resume-parser/internal/profile"
)

func newSchemaCmd() *cobra.Command {
	var outline bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the profile JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outline {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), profile.FieldOutline())
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, profile.JSONSchema(), "", "  "); err != nil {
				return fmt.Errorf("format schema: %w", err)
			}
			buf.WriteByte('\n')
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "Print the compact field outline used in prompts")
	return cmd
}
