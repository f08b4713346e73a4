package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"recipefinder/internal/views"
)

var (
	emailFlag    string
	usernameFlag string
)

// prompter reads answers from the command's input. Passwords are read
// without echo when the input is a terminal.
type prompter struct {
	in  io.Reader
	buf *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, buf: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	text, err := p.buf.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		fmt.Fprint(p.out, label)
		passwordBytes, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(p.out) // Add a newline after password input
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(passwordBytes), nil
	}
	return p.line(label)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the recipe server",
	Long:  "Authenticate with the recipe server to save favorites, rate and review recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p := newPrompter(cmd)
		email := emailFlag
		if email == "" {
			if email, err = p.line("Email: "); err != nil {
				return err
			}
		}
		password, err := p.secret("Password: ")
		if err != nil {
			return err
		}

		form := views.NewLoginForm(a.env)
		form.Email = email
		form.Password = password
		if _, err := form.Submit(cmd.Context()); err != nil {
			return newViewError(form.Error, err)
		}

		a.rememberEmail(strings.TrimSpace(email))
		printSuccess(cmd.OutOrStdout(), "Successfully logged in as %s", strings.TrimSpace(email))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the recipe server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p := newPrompter(cmd)
		form := views.NewRegisterForm(a.env)
		form.Email, form.Username = emailFlag, usernameFlag
		if form.Email == "" {
			if form.Email, err = p.line("Email: "); err != nil {
				return err
			}
		}
		if form.Username == "" {
			if form.Username, err = p.line("Name: "); err != nil {
				return err
			}
		}
		if form.Password, err = p.secret("Password: "); err != nil {
			return err
		}

		if _, err := form.Submit(cmd.Context()); err != nil {
			return newViewError(form.Error, err)
		}

		a.rememberEmail(strings.TrimSpace(form.Email))
		printSuccess(cmd.OutOrStdout(), "Account created for %s", strings.TrimSpace(form.Email))
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'recipes login' to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the recipe server",
	Long:  "Tell the server to end the session and remove the saved token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.Authenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "You are not logged in")
			return nil
		}

		dashboard := views.NewDashboard(a.env)
		if _, err := dashboard.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}

		printSuccess(cmd.OutOrStdout(), "Successfully logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVar(&emailFlag, "email", "", "Account email (prompted when omitted)")
	registerCmd.Flags().StringVar(&emailFlag, "email", "", "Account email (prompted when omitted)")
	registerCmd.Flags().StringVar(&usernameFlag, "username", "", "Display name (prompted when omitted)")
}
