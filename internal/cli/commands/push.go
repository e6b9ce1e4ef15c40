package commands

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"touchgo/internal/guestfs"
	"touchgo/internal/util"
)

var pushCmd = &cobra.Command{
	Use:   "push <bundle-dir> <host-src-dir>",
	Short: "Copy host files into the app's Documents directory",
	Long: `Copies the regular files at the top level of a host directory into the
app's sandboxed Documents directory, going through the guest filesystem's
create path. Patterns from the config excludes list are skipped. The
sandbox is locked for the duration so concurrent pushes do not race.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, _, id, err := openBundle(args[0])
		if err != nil {
			return err
		}

		lockPath := filepath.Join(guestfs.SandboxHostDir, id, ".touchgo.lock")
		lock, err := util.AcquireLock(cmd.Context(), lockPath)
		if err != nil {
			return fmt.Errorf("failed to lock sandbox: %w", err)
		}
		defer lock.Unlock()

		matcher := ignore.CompileIgnoreLines(cfg.Excludes...)

		entries, err := os.ReadDir(args[1])
		if err != nil {
			return fmt.Errorf("failed to read source directory: %w", err)
		}

		documents := fs.HomeDirectory().Join("Documents")
		pushed := 0
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				log.Debugf("push: skipping directory %q (guest Documents is flat)", name)
				continue
			}
			if matcher.MatchesPath(name) {
				log.Debugf("push: skipping excluded file %q", name)
				continue
			}

			data, err := os.ReadFile(filepath.Join(args[1], name))
			if err != nil {
				return err
			}
			opts := guestfs.NewGuestOpenOptions().Write().Create().Truncate()
			f, err := fs.OpenWithOptions(documents.Join(name), opts)
			if err != nil {
				return fmt.Errorf("failed to create %q: %w", name, err)
			}
			if _, err := f.Write(data); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			pushed++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "pushed %d file(s) to %s\n", pushed, documents)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
