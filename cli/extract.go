package cli

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/spf13/cobra"

	"carf-backend/files"
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Print the excerpt the chat would receive for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ex := files.Extract(path, mime.TypeByExtension(filepath.Ext(path)))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "format: %s\nstatus: %s\n", ex.Format, ex.Status)
		if code := ex.Code(); code != "" {
			fmt.Fprintf(out, "code: %s\n", code)
		}
		fmt.Fprintf(out, "chars: %d\n\n%s\n", len([]rune(ex.Text)), ex.Text)
		return nil
	},
}
