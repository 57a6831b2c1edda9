package commands

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/entraops/palctl/internal/identity"
	"github.com/entraops/palctl/internal/logger"
)

var (
	loginDeviceCode bool
	loginTenant     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Microsoft Entra ID",
	Long: `Sign in with your work account. A cached session is reused when one
is available; otherwise a browser window opens to complete sign-in.

Use --device-code on machines without a browser: a code is displayed
to enter on another device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var sess identity.Session
		if loginDeviceCode {
			sess = engine.Auth.SignInWithDeviceCode(ctx, loginTenant, func(userCode, verificationURL string) {
				printf("To sign in, open %s and enter the code %s\n", verificationURL, userCode)
				if err := browser.OpenURL(verificationURL); err != nil {
					logger.Debug("could not open browser", "error", err)
				}
			})
		} else {
			sess = engine.Auth.SignInInteractive(ctx, loginTenant)
		}

		if !sess.Authenticated {
			return fmt.Errorf("sign-in failed")
		}

		printf("Signed in as %s", sess.PrincipalName)
		if sess.DisplayName != "" {
			printf(" (%s)", sess.DisplayName)
		}
		printf("\n")
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginDeviceCode, "device-code", false,
		"use the device code flow instead of the browser")
	loginCmd.Flags().StringVar(&loginTenant, "tenant", "",
		"tenant ID to sign in to (default: the configured authority)")
}
