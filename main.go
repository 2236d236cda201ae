// =============================================================================
// FASTA to Vienna Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the fasta2vienna CLI application. It
// delegates everything to the cmd package.
//
// USAGE:
//   fasta2vienna [file ...]     - Collapse each FASTA record onto one line
//   cat in.fa | fasta2vienna    - Same, reading standard input
//   fasta2vienna batch          - Convert every FASTA file in a directory
//   fasta2vienna wrap           - Re-wrap single-line records to a fixed width
//   fasta2vienna config         - Generate or validate the configuration file
//   fasta2vienna version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Reformatter, configuration, logging, batch conversion
//   - pkg/       : Shared file and report utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fasta2vienna/cmd"
)

func main() {
	cmd.Execute()
}
