package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fasta2vienna/internal/reformat"
	"github.com/ginjaninja78/fasta2vienna/internal/wrap"
	"github.com/ginjaninja78/fasta2vienna/pkg/utils"
)

func newWrapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrap [file ...]",
		Short: "Re-wrap FASTA sequences to a fixed line width",
		Long: `The wrap command is the inverse of the default command: it reads FASTA in
any layout and writes each record with sequence lines of at most --width
residues (wrap.width in the config file).

Each header is split into its ID and description and written back as
">ID description": whitespace between them becomes a single space. Input
must begin with a header line.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWrap(cmd, args)
		},
	}
	cmd.Flags().Int("width", wrap.DefaultWidth, "residues per sequence line")
	return cmd
}

func (a *app) runWrap(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{reformat.StdinName}
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	records := 0
	for _, path := range args {
		n, err := a.wrapFile(path, cmd, out)
		records += n
		if utils.IsBrokenPipe(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil && !utils.IsBrokenPipe(err) {
		return err
	}

	a.logger.WithField("records", records).Debug("wrapped")
	return nil
}

func (a *app) wrapFile(path string, cmd *cobra.Command, out *bufio.Writer) (int, error) {
	rc, err := reformat.Open(path, cmd.InOrStdin())
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := wrap.Wrap(rc, out, a.cfg.Wrap.Width)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
