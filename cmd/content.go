package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect content packs",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a content pack against the schema and report broken links",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		out := cmd.OutOrStdout()
		pack, err := content.Load(path)
		if err != nil {
			var verr *content.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(out, "%s: invalid\n", verr.Source)
				for _, p := range verr.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				if len(verr.Problems) == 0 && verr.Err != nil {
					fmt.Fprintf(out, "  - %v\n", verr.Err)
				}
			}
			return err
		}

		fmt.Fprintf(out, "%s: %q %s\n", pack.Source, pack.Title, pack.Version)
		fmt.Fprintf(out, "  %d words, %d nodes, start %q\n", len(pack.Words), len(pack.Nodes), pack.Start)

		dangling := pack.DanglingLinks()
		for _, l := range dangling {
			fmt.Fprintf(out, "  warning: %s choice %d leads to missing node %q (closes the dialogue)\n",
				l.NodeID, l.ChoiceIndex+1, l.LeadsTo)
		}
		if len(dangling) == 0 {
			fmt.Fprintln(out, "  ok")
		}
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
}
