package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchgo/internal/guestfs"
)

var catCmd = &cobra.Command{
	Use:   "cat <bundle-dir> <guest-path>",
	Short: "Print the contents of a guest file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, _, _, err := openBundle(args[0])
		if err != nil {
			return err
		}

		path := guestfs.GuestPath(args[1])
		data, err := fs.Read(path)
		if err != nil {
			return fmt.Errorf("cannot read %q: %w", path, err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
