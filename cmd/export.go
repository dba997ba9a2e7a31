package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/anki"
	"github.com/abhisek/kotoba/internal/vocab"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export encountered words as an Anki import file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "kotoba-anki.tsv", "Output file path (use - for stdout)")
	exportCmd.Flags().Bool("all", false, "Include words that were already exported")
	exportCmd.Flags().String("min-mastery", string(vocab.MasterySeen), "Lowest mastery tier to export: seen, learning, known")
	exportCmd.Flags().Bool("dry-run", false, "Write the file without marking words as exported")
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	all, _ := cmd.Flags().GetBool("all")
	minMastery, _ := cmd.Flags().GetString("min-mastery")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	switch vocab.Mastery(minMastery) {
	case vocab.MasterySeen, vocab.MasteryLearning, vocab.MasteryKnown:
	default:
		return fmt.Errorf("invalid --min-mastery %q", minMastery)
	}

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	pack, err := e.loadPack()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	eng, err := e.loadEngine(ctx, pack)
	if err != nil {
		return err
	}
	defer eng.Close()

	notes := anki.Select(eng.Words(), eng.Tracker(), anki.Options{
		All:        all,
		MinMastery: vocab.Mastery(minMastery),
	})
	if len(notes) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to export.")
		return nil
	}

	if err := writeExport(cmd.OutOrStdout(), output, notes); err != nil {
		return err
	}

	if !dryRun {
		for _, n := range notes {
			eng.MarkExported(n.WordID)
		}
		if err := e.saveEngine(ctx, eng); err != nil {
			return fmt.Errorf("save exported flags: %w", err)
		}
	}

	e.log.WithField("notes", len(notes)).WithField("output", output).Info("export complete")
	if output != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(notes), output)
	}
	return nil
}

// writeExport writes notes to output, or to stdout for "-". Files are
// closed before returning so words are only marked once the data is on disk.
func writeExport(stdout io.Writer, output string, notes []anki.Note) error {
	if output == "-" {
		if err := anki.Write(stdout, notes); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := anki.Write(f, notes); err != nil {
		_ = f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
