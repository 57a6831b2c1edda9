package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/internal/cli/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sign-in status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := engine.Auth.Session()
		if !sess.Authenticated {
			sess = engine.Auth.TrySignInSilently(cmd.Context())
		}

		if !sess.Authenticated {
			printf("Not signed in. Run 'palctl login' to sign in.\n")
			return nil
		}

		pairs := [][2]string{
			{"Account", sess.PrincipalName},
			{"Name", sess.DisplayName},
			{"Home tenant", sess.HomeTenantID},
			{"Signed in", sess.LastAuthTime.Format(time.RFC1123)},
		}
		if !sess.TokenExpiry.IsZero() {
			pairs = append(pairs, [2]string{"Token expires", sess.TokenExpiry.Format(time.RFC1123)})
		}
		output.KeyValueTable(os.Stdout, pairs)
		return nil
	},
}
