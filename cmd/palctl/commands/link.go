package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/cmd/palctl/cmdutil"
	"github.com/entraops/palctl/internal/cli/output"
	"github.com/entraops/palctl/internal/cli/prompt"
	"github.com/entraops/palctl/internal/partner"
)

var (
	linkPartnerID string
	linkAll       bool
	linkTenants   []string
	linkYes       bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a partner ID to one or more tenants",
	Long: `Attach your partner identifier to tenants. Without --all or --tenant
an interactive picker shows the reachable tenants.

A tenant already linked to the same ID is reported as linked without
rewriting. A tenant linked to a different ID is reported as a conflict;
remove the existing link first with 'palctl unlink'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := engine.RequireSession(ctx); err != nil {
			return err
		}

		partnerID, err := resolvePartnerID()
		if err != nil {
			return cmdutil.HandleAbort(err)
		}

		tenants, err := discoverTenants(ctx)
		if err != nil {
			return err
		}
		selected, err := selectTenants(tenants)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		if len(selected) == 0 {
			printf("No tenants selected.\n")
			return nil
		}

		if !linkYes {
			ok, err := prompt.Confirm(
				fmt.Sprintf("Link partner ID %s to %d tenant(s)?", partnerID, len(selected)), true)
			if err != nil {
				return cmdutil.HandleAbort(err)
			}
			if !ok {
				return nil
			}
		}

		outcomes := engine.Orchestrator.LinkMany(ctx, partnerID, selected,
			func(completed, total int, current *partner.Tenant) {
				if completed < total {
					printf("[%d/%d] Linking %s...\n", completed+1, total, current.Label())
				}
			})

		printOutcomes(outcomes)
		linked := partner.CountSuccesses(outcomes)
		printf("\n%d of %d tenant(s) linked.\n", linked, len(outcomes))
		if linked < len(outcomes) {
			return fmt.Errorf("%d tenant(s) could not be linked", len(outcomes)-linked)
		}
		return nil
	},
}

// resolvePartnerID returns the partner ID from the flag or prompts for
// one, validating either way.
func resolvePartnerID() (string, error) {
	if linkPartnerID != "" {
		if !partner.ValidatePartnerID(linkPartnerID) {
			return "", fmt.Errorf("invalid partner ID %q: must be 6 to 10 digits", linkPartnerID)
		}
		return linkPartnerID, nil
	}
	return prompt.InputWithValidation("Partner ID", func(s string) error {
		if !partner.ValidatePartnerID(s) {
			return fmt.Errorf("must be 6 to 10 digits")
		}
		return nil
	})
}

// selectTenants narrows the discovered tenants to the requested set:
// everything with --all, the --tenant flags when given, otherwise an
// interactive multi-select.
func selectTenants(tenants []*partner.Tenant) ([]*partner.Tenant, error) {
	if linkAll {
		return tenants, nil
	}

	if len(linkTenants) > 0 {
		byKey := make(map[string]*partner.Tenant, len(tenants)*2)
		for _, t := range tenants {
			byKey[t.ID] = t
			if t.Domain != "" {
				byKey[t.Domain] = t
			}
		}
		selected := make([]*partner.Tenant, 0, len(linkTenants))
		for _, key := range linkTenants {
			t, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("tenant %q not found among reachable tenants", key)
			}
			selected = append(selected, t)
		}
		return selected, nil
	}

	options := make([]prompt.SelectOption, 0, len(tenants))
	byID := make(map[string]*partner.Tenant, len(tenants))
	for _, t := range tenants {
		label := t.Label()
		if t.HasPartnerLink && t.CurrentPartnerLink != nil {
			label += " (linked to " + *t.CurrentPartnerLink + ")"
		}
		options = append(options, prompt.SelectOption{Label: label, Value: t.ID})
		byID[t.ID] = t
	}
	ids, err := prompt.MultiSelect("Select tenants to link", options)
	if err != nil {
		return nil, err
	}
	selected := make([]*partner.Tenant, 0, len(ids))
	for _, id := range ids {
		selected = append(selected, byID[id])
	}
	return selected, nil
}

// outcomeTable renders link/unlink outcomes for display.
type outcomeTable []partner.Outcome

func (o outcomeTable) Headers() []string {
	return []string{"Tenant", "Result", "Detail"}
}

func (o outcomeTable) Rows() [][]string {
	rows := make([][]string, 0, len(o))
	for _, oc := range o {
		result := "failed"
		detail := oc.ErrorMessage
		if oc.ErrorKind != "" && oc.ErrorKind != oc.ErrorMessage {
			detail = oc.ErrorKind + ": " + oc.ErrorMessage
		}
		if oc.Success {
			result = "linked"
			detail = oc.Details
		}
		rows = append(rows, []string{oc.Tenant.Label(), result, detail})
	}
	return rows
}

func printOutcomes(outcomes []partner.Outcome) {
	output.PrintTable(os.Stdout, outcomeTable(outcomes))
	for _, oc := range outcomes {
		if !oc.Success && oc.Details != "" {
			printf("  %s: %s\n", oc.Tenant.Label(), oc.Details)
		}
	}
}

func init() {
	linkCmd.Flags().StringVarP(&linkPartnerID, "partner-id", "p", "",
		"partner identifier (6 to 10 digits)")
	linkCmd.Flags().BoolVar(&linkAll, "all", false, "link every reachable tenant")
	linkCmd.Flags().StringArrayVarP(&linkTenants, "tenant", "t", nil,
		"tenant ID or domain to link (repeatable)")
	linkCmd.Flags().BoolVarP(&linkYes, "yes", "y", false, "skip confirmation")
}
