// crowdctl drives the Crowd rental-marketplace client from the terminal:
// the same session, property, and booking stores the mobile app uses, minus
// the screens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crowdhq/crowd-client-go/internal/utils"
)

func main() {
	utils.InitLogger("crowdctl")

	rootCmd := &cobra.Command{
		Use:           "crowdctl",
		Short:         "Crowd rental marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		registerCmd(),
		verifyOTPCmd(),
		loginCmd(),
		logoutCmd(),
		profileCmd(),
		propertiesCmd(),
		viewingsCmd(),
		subscriptionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
