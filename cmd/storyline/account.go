package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kerbaras/storyline/pkg/app"
)

// Account activation and password-reset confirmation both work off values
// from an emailed link, so they live here as plain commands instead of TUI
// screens.

var activateCmd = &cobra.Command{
	Use:   "activate [uid] [token]",
	Short: "Activate an account from the emailed link",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		if err := a.Deps.API.Activate(context.Background(), args[0], args[1]); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("✓ Account activated, you can sign in now")
	},
}

var confirmResetCmd = &cobra.Command{
	Use:   "confirm-reset [uid] [token]",
	Short: "Set a new password from the emailed reset link",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		fmt.Print("New password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			cobra.CheckErr(err)
		}

		fmt.Print("Repeat password: ")
		repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			cobra.CheckErr(err)
		}

		if string(password) != string(repeat) {
			cobra.CheckErr(fmt.Errorf("passwords do not match"))
		}

		err = a.Deps.API.ConfirmResetPassword(context.Background(), args[0], args[1], string(password), string(repeat))
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Println("✓ Password changed")
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(confirmResetCmd)
}
