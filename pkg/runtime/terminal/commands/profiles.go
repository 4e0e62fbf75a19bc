package commands

import (
	"fmt"

	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(globals *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the backends defined in the profiles file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := config.NewRegistry(globals.ProfilesPath)
			if err != nil {
				return fmt.Errorf("failed to create profile registry: %w", err)
			}

			names, err := registry.GetProfiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				profile, err := registry.GetProfile(cmd.Context(), name)
				if err != nil {
					fmt.Fprintf(out, "%s\t(invalid: %v)\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", profile.Name, profile.ReportURL, profile.LogURL)
			}
			return nil
		},
	}
}
