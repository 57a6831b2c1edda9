package commands

import (
	"github.com/spf13/cobra"

	"github.com/entraops/palctl/cmd/palctl/cmdutil"
	"github.com/entraops/palctl/internal/cli/prompt"
)

var logoutYes bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := engine.Auth.Session()
		if !sess.Authenticated {
			printf("Not signed in.\n")
			return nil
		}

		if !logoutYes {
			ok, err := prompt.Confirm("Sign out "+sess.PrincipalName+"?", true)
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
			if !ok {
				return nil
			}
		}

		engine.Auth.SignOut(cmd.Context())
		printf("Signed out.\n")
		return nil
	},
}

func init() {
	logoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "skip confirmation")
}
