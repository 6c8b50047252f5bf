package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repfit/repfit-go/client"
)

const usage = `usage: repfit [-server URL] <command> [args]

commands:
  register <username> <email> <password>
  login    <identifier> <password>
  me
  workouts
  logout
`

func main() {
	server := flag.String("server", envOr("REPFIT_SERVER", "http://localhost:8080"), "API base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store := client.NewFileStore(tokenPath())
	c := client.New(*server, client.WithTokenStore(store))
	ctx := context.Background()

	if err := run(ctx, c, args); err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "register":
		if len(rest) != 3 {
			return errors.New("register needs <username> <email> <password>")
		}
		resp, err := c.Register(ctx, rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s <%s>\n", resp.User.Username, resp.User.Email)
		return nil

	case "login":
		if len(rest) != 2 {
			return errors.New("login needs <identifier> <password>")
		}
		resp, err := c.Login(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", resp.User.Username)
		return nil

	case "me":
		user, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		if user.Stats != nil {
			fmt.Printf("workouts: %d, streak: %d days\n", user.Stats.TotalWorkouts, user.Stats.Streak)
		}
		return nil

	case "workouts":
		resp, err := c.Workouts(ctx, 1, 20)
		if err != nil {
			return err
		}
		if len(resp.Workouts) == 0 {
			fmt.Println("no workouts logged")
			return nil
		}
		for _, w := range resp.Workouts {
			fmt.Printf("%s  %-20s %d min, %d exercises\n",
				w.Date.Format("2006-01-02"), w.Name, w.Duration, len(w.Exercises))
		}
		return nil

	case "logout":
		if err := c.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func tokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "repfit", "tokens.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
