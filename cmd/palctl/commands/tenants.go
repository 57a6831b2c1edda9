package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/cmd/palctl/cmdutil"
	"github.com/entraops/palctl/internal/cli/output"
	"github.com/entraops/palctl/internal/cli/prompt"
	"github.com/entraops/palctl/internal/partner"
)

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "List reachable tenants and their partner links",
	Long: `List every tenant your account can reach and the partner link
currently attached to each. Tenants that require extra sign-in steps
(consent, MFA) prompt before retrying; slow tenants can be skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := engine.RequireSession(ctx); err != nil {
			return err
		}

		tenants, err := discoverTenants(ctx)
		if err != nil {
			return err
		}
		if len(tenants) == 0 {
			printf("No tenants found.\n")
			return nil
		}

		output.PrintTable(os.Stdout, tenantTable(tenants))
		return nil
	},
}

// discoverTenants runs discovery with interactive callbacks for auth
// challenges and slow checks.
func discoverTenants(ctx context.Context) ([]*partner.Tenant, error) {
	onAuthFailure := func(tenantID, errorKind, errorMessage string) bool {
		printf("Tenant %s needs attention: %s\n", tenantID, errorMessage)
		retry, err := prompt.Confirm("Sign in to this tenant now?", false)
		if err != nil || !retry {
			return true // skip
		}
		return false
	}
	onTimeout := func(tenantID string) bool {
		skip, err := prompt.Confirm(
			fmt.Sprintf("Checking tenant %s is taking a while. Skip it?", tenantID), true)
		if err != nil {
			return true
		}
		return skip
	}

	tenants, err := engine.Discovery.Discover(ctx, onAuthFailure, onTimeout)
	if err != nil {
		return nil, cmdutil.HandleAbort(err)
	}
	return tenants, nil
}

// tenantTable renders tenants for display.
type tenantTable []*partner.Tenant

func (t tenantTable) Headers() []string {
	return []string{"Tenant", "ID", "Domain", "Partner Link", "Roles"}
}

func (t tenantTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, tenant := range t {
		link := "-"
		if tenant.HasPartnerLink {
			link = "(unknown)"
			if tenant.CurrentPartnerLink != nil {
				link = *tenant.CurrentPartnerLink
			}
		}
		name := tenant.DisplayName
		if tenant.IsGuestUser {
			name += " (guest)"
		}
		rows = append(rows, []string{
			name,
			tenant.ID,
			tenant.Domain,
			link,
			strings.Join(tenant.UserRoles, ", "),
		})
	}
	return rows
}
