package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/usbsim/internal/infra/fsworkspace"
	"github.com/aalvaropc/usbsim/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a usbsim workspace (usbsim.yaml and .gitignore entries)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			root, err := uc.Execute(path, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized usbsim workspace at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing usbsim.yaml")
	return c
}
