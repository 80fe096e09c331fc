package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app"
	"github.com/kerbaras/storyline/pkg/data"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long:  "Exchange your credentials for a token pair and keep it in the local session store",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Email: ")
		email, err := reader.ReadString('\n')
		if err != nil {
			cobra.CheckErr(err)
		}

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			cobra.CheckErr(err)
		}

		ctx := context.Background()
		pair, err := a.Deps.API.Login(ctx, api.Credentials{
			Email:    strings.TrimSpace(email),
			Password: string(password),
		})
		if err != nil {
			for _, msg := range api.ErrorMessages(err) {
				fmt.Println("✗", msg)
			}
			os.Exit(1)
		}

		a.Deps.Store.Auth.FinishLogin(pair)

		user, err := a.Deps.API.CurrentUser(ctx)
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("✓ Signed in as %s\n", user.Username)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		a.Deps.Store.Auth.Logout()
		fmt.Println("✓ Signed out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		if a.Deps.Session.Get(data.KeyAccess) == "" {
			fmt.Printf("Not signed in (server: %s)\n", a.Deps.API.BaseURL())
			return
		}

		user, err := a.Deps.API.CurrentUser(context.Background())
		if err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("%s <%s> on %s\n", user.Username, user.Email, a.Deps.API.BaseURL())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
