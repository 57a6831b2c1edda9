package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/cmd/palctl/cmdutil"
	"github.com/entraops/palctl/internal/cli/prompt"
	"github.com/entraops/palctl/internal/partner"
)

var unlinkYes bool

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the partner link from your home tenant",
	Long: `Read the partner link currently attached to your home tenant and
remove it. Fails when no link exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := engine.RequireSession(ctx)
		if err != nil {
			return err
		}

		if !unlinkYes {
			ok, err := prompt.Confirm("Remove the partner link from your home tenant?", false)
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
			if !ok {
				return nil
			}
		}

		tenant := &partner.Tenant{ID: sess.HomeTenantID}
		outcome := engine.Reconciler.Unlink(ctx, tenant)
		if !outcome.Success {
			return fmt.Errorf("unlink failed: %s", outcome.ErrorMessage)
		}
		printf("Partner link %s removed.\n", outcome.PartnerID)
		return nil
	},
}

func init() {
	unlinkCmd.Flags().BoolVarP(&unlinkYes, "yes", "y", false, "skip confirmation")
}
