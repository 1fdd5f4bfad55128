// Command quizctl is the terminal client for the quiz API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/quiz-service/internal/client"
)

const usage = `usage: quizctl [-api URL] [-session FILE] <command> [args]

commands:
  register <username> <email> <password>
  login <username> <password>
  logout
  list                      all quizzes
  mine                      quizzes you created
  show <id>                 quiz details
  create <file.json|yaml>   create a quiz from a definition file
  delete <id>
  take <id>                 take a quiz against the clock
  results                   your results, newest first
  export [file.xlsx]        download your results workbook
  health
`

type app struct {
	client *client.Client
	in     io.Reader
	out    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		if client.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "Session expired. Please login again.")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("quizctl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	apiURL := fs.String("api", envOr("QUIZCTL_API", client.DefaultBaseURL), "API base URL including /api")
	sessionPath := fs.String("session", os.Getenv("QUIZCTL_SESSION"), "session file (default $HOME/.quizctl/session.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	path := *sessionPath
	if path == "" {
		var err error
		if path, err = client.DefaultSessionPath(); err != nil {
			return err
		}
	}
	session, err := client.LoadSession(path)
	if err != nil {
		return err
	}

	a := &app{client: client.New(*apiURL, session), in: in, out: out}
	return a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "list":
		return a.list(ctx)
	case "mine":
		return a.mine(ctx)
	case "show":
		return a.show(ctx, args)
	case "create":
		return a.create(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "take":
		return a.take(ctx, args)
	case "results":
		return a.results(ctx)
	case "export":
		return a.export(ctx, args)
	case "health":
		return a.health(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
