package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchgo/internal/guestfs"
)

var lsCmd = &cobra.Command{
	Use:   "ls <bundle-dir> [guest-path]",
	Short: "List a guest directory (defaults to the home directory)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, _, _, err := openBundle(args[0])
		if err != nil {
			return err
		}

		path := fs.HomeDirectory()
		if len(args) == 2 {
			path = guestfs.GuestPath(args[1])
		}
		names, err := fs.List(path)
		if err != nil {
			return fmt.Errorf("cannot list %q: %w", path, err)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
