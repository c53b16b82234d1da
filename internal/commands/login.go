package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/oauth2"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. It stores a bearer token that the
// REST backend sends with every request.
type LoginCmd struct {
	token string

	// Stdin supplies the token when --token is not given. Nil means os.Stdin.
	Stdin io.Reader
}

// SetToken sets the --token value (for testing).
func (c *LoginCmd) SetToken(token string) {
	c.token = token
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store an API token" }
func (c *LoginCmd) Usage() string      { return "taskpad login [--token <token>]" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "bearer token (read from stdin when omitted)")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	raw := c.token
	if raw == "" {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		line, err := readLine(in)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read token: %v\n", err)
			return exitcode.UserError
		}
		raw = line
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	token := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if err := cfg.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.ConfigError
	}

	cfg.Log().Debug("token_saved", "path", cfg.TokenPath())
	printOK(cfg, out)
	return exitcode.Success
}

// readLine returns the first line of r without its line ending.
// An empty input yields "".
func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if sc.Scan() {
		return sc.Text(), nil
	}
	return "", sc.Err()
}
