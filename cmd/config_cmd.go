package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fasta2vienna/internal/config"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigValidateCmd(a))
	return cmd
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a default " + config.AppName + ".yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.RenderDefaultYAML()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			if utils.FileExists(out) && !overwrite {
				return fmt.Errorf("config already exists at %s; use --overwrite to replace it", out)
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", config.AppName+".yaml", `output path ("-" for stdout)`)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file")
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(a.cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			source := "defaults"
			if used := a.v.ConfigFileUsed(); used != "" && utils.FileExists(used) {
				source = used
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK (%s)\n", source)
			return nil
		},
	}
}
