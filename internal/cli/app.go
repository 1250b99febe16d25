package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/untpkit/resolver/internal/server/auth"
)

const usage = `usage: resolver-admin <command>

commands:
  token     mint an admin bearer token (prompts for the signing secret)
  hash-key  bcrypt-hash an API key for the server configuration
`

type App struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewApp() *App {
	return &App{reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Run dispatches one admin command.
func (app *App) Run(args []string) error {
	if len(args) < 1 {
		fmt.Fprint(app.out, usage)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "token":
		return app.mintToken(args[1:])
	case "hash-key":
		return app.hashKey(args[1:])
	default:
		fmt.Fprint(app.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (app *App) mintToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	clientID := fs.String("i", "", "client identity to embed in the token (prompted when omitted)")
	minutes := fs.Int("t", 60, "token validity (in minutes)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id := *clientID
	if id == "" {
		var err error
		id, err = GetSimpleText(app.reader, "Client identity", app.out)
		if err != nil {
			return err
		}
		if id == "" {
			id = "admin"
		}
	}

	secret, err := GetSecret("Enter signing secret: ", app.out)
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(id, secret, time.Duration(*minutes)*time.Minute)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, token)
	return nil
}

func (app *App) hashKey(args []string) error {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	key, err := GetSecret("Enter API key: ", app.out)
	if err != nil {
		return err
	}

	hash, err := auth.HashAPIKey(string(key))
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, hash)
	return nil
}
