// Command authctl registers, logs in and inspects the current identity against an authgate server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"authgate/internal/client"

	"github.com/spf13/pflag"
)

const defaultServer = "http://localhost:5000"

const usage = `usage: authctl <register|login|whoami|logout> [--server URL] [--username NAME] [--token-file PATH]`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, int(os.Stdin.Fd()), os.Stdout, os.Stderr))
}

type app struct {
	api    *client.Client
	tokens *client.TokenStore
	prompt *client.Prompter
	out    io.Writer
}

// run executes one subcommand and returns the process exit code. stdinFd is the descriptor
// behind stdin, used to read passwords without echo when it is a terminal.
func run(ctx context.Context, args []string, stdin io.Reader, stdinFd int, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stderr, usage)
		return 2
	}
	cmd, rest := args[0], args[1:]

	fs := pflag.NewFlagSet("authctl "+cmd, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	serverURL := fs.String("server", envOr("AUTHGATE_SERVER", defaultServer), "authgate server base URL")
	username := fs.String("username", "", "account name (prompted when empty)")
	tokenFile := fs.String("token-file", os.Getenv("AUTHGATE_TOKEN_FILE"), "where the token is kept (default: user config dir)")
	if err := fs.Parse(rest); err != nil {
		return 2
	}

	tokens, err := tokenStore(*tokenFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	a := &app{
		api:    client.New(*serverURL, nil),
		tokens: tokens,
		prompt: client.NewPrompter(stdin, stdinFd, stdout),
		out:    stdout,
	}

	switch cmd {
	case "register":
		err = a.register(ctx, *username)
	case "login":
		err = a.login(ctx, *username)
	case "whoami":
		err = a.whoami(ctx)
	case "logout":
		err = a.logout()
	default:
		_, _ = fmt.Fprintln(stderr, usage)
		return 2
	}
	if err != nil {
		if apiErr, ok := client.IsAPIError(err); ok {
			_, _ = fmt.Fprintln(stderr, apiErr.Message)
		} else {
			_, _ = fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func (a *app) credentials(username string) (string, string, error) {
	var err error
	if username == "" {
		if username, err = a.prompt.Line("Username"); err != nil {
			return "", "", fmt.Errorf("read username: %w", err)
		}
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return username, password, nil
}

func (a *app) register(ctx context.Context, username string) error {
	username, password, err := a.credentials(username)
	if err != nil {
		return err
	}
	res, err := a.api.Register(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(res.Token); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s (id %s)\n", res.Message, res.UserID)
	return nil
}

func (a *app) login(ctx context.Context, username string) error {
	username, password, err := a.credentials(username)
	if err != nil {
		return err
	}
	token, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(token); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.out, "Logged in")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	token, err := a.tokens.Load()
	if errors.Is(err, client.ErrNoToken) {
		return errors.New("not logged in")
	}
	if err != nil {
		return err
	}
	me, err := a.api.Me(ctx, token)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s (id %s)\n", me.Username, me.UserID)
	return nil
}

func (a *app) logout() error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.out, "Logged out")
	return nil
}

func tokenStore(path string) (*client.TokenStore, error) {
	if path != "" {
		return client.NewTokenStore(path), nil
	}
	return client.DefaultTokenStore()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
