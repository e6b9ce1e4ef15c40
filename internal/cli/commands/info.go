package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchgo/internal/guestfs"
)

var infoCmd = &cobra.Command{
	Use:   "info <bundle-dir>",
	Short: "Show the guest layout built for an app bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, bundlePath, id, err := openBundle(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "bundle id:      %s\n", id)
		fmt.Fprintf(out, "home directory: %s\n", fs.HomeDirectory())
		fmt.Fprintf(out, "bundle path:    %s\n", bundlePath)
		fmt.Fprintf(out, "info plist:     %v\n", fs.IsFile(bundlePath.Join("Info.plist")))
		for _, dylib := range []string{"libgcc_s.1.dylib", "libstdc++.6.dylib", "libstdc++.6.0.4.dylib"} {
			fmt.Fprintf(out, "/usr/lib/%-22s %v\n", dylib+":", fs.IsFile(guestfs.GuestPath("/usr/lib").Join(dylib)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
