package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/vibe-manager/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a vibe-manager workspace",
	Long: `Create a workspace in the given directory (the current directory by
default). A workspace is a directory holding a .vibe-manager config file and
one sub-directory per direct report.

Running init on an existing workspace leaves it untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ResolvePath == nil {
			return fmt.Errorf("path resolver not initialized")
		}

		pathArg := "."
		if len(args) > 0 {
			pathArg = args[0]
		}
		absPath, err := ResolvePath(pathArg)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		out := cmd.OutOrStdout()
		if err := storage.InitWorkspace(absPath); err != nil {
			if errors.Is(err, storage.ErrWorkspaceExists) {
				fmt.Fprintf(out, "Workspace already initialized at %s\n", absPath)
				return nil
			}
			return err
		}

		fmt.Fprintf(out, "Workspace initialized at %s\n\n", absPath)
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintf(out, "  vibe %s    open the dashboard\n", absPath)
		fmt.Fprintln(out, "  n          recruit your first report")
		fmt.Fprintln(out, "  ?          show every key binding")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
