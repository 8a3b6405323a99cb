// clubcli is a terminal client for the clubhub API. It keeps a login
// session across invocations by persisting the issued token in the user's
// config directory.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"clubhub-service/internal/client/api"
	"clubhub-service/internal/client/guard"
	"clubhub-service/internal/client/session"
	"clubhub-service/internal/client/store"
)

const defaultAPIURL = "http://localhost:8000"

var routes = map[string]guard.Route{
	"login":     {Name: "login", Access: guard.AccessPublic},
	"dashboard": {Name: "dashboard", Access: guard.AccessAuthenticated},
	"members":   {Name: "members", Access: guard.AccessAuthenticated},
	"admin":     {Name: "admin", Access: guard.AccessAuthenticated, Role: "admin"},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sess, err := newSession()
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.Restore(ctx); err != nil {
		fatal(err)
	}

	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, sess, os.Args[2:])
	case "logout":
		sess.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		err = runWhoami(sess)
	case "members":
		err = runMembers(ctx, sess)
	case "open":
		err = runOpen(sess, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func newSession() (*session.Session, error) {
	baseURL := os.Getenv("CLUBHUB_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	tokenPath := os.Getenv("CLUBHUB_TOKEN_FILE")
	if tokenPath == "" {
		p, err := store.DefaultPath()
		if err != nil {
			return nil, err
		}
		tokenPath = p
	}

	return session.New(api.New(baseURL), store.NewFileStore(tokenPath)), nil
}

func runLogin(ctx context.Context, sess *session.Session, args []string) error {
	var identifier string
	if len(args) > 0 {
		identifier = args[0]
	} else {
		fmt.Print("Username or email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		identifier = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	user, err := sess.Login(ctx, identifier, string(raw))
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s).\n", user.Username, user.Role)
	return nil
}

func runWhoami(sess *session.Session) error {
	if !sess.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	u := sess.User()
	fmt.Printf("%s <%s> role=%s\n", u.Username, u.Email, u.Role)
	if u.FullName != "" {
		fmt.Printf("profile: %s\n", u.FullName)
	}
	return nil
}

func runMembers(ctx context.Context, sess *session.Session) error {
	if d := guard.Resolve(sess, routes["members"]); d.Action != guard.Render {
		return describeDenial(d)
	}

	members, err := sess.API().Members(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		fmt.Printf("%v\t%v %v\t%v\n", m["id"], m["first_name"], m["last_name"], m["club_role"])
	}
	return nil
}

func runOpen(sess *session.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: clubcli open <view>")
	}
	route, ok := routes[args[0]]
	if !ok {
		return fmt.Errorf("unknown view %q", args[0])
	}

	d := guard.Resolve(sess, route)
	switch d.Action {
	case guard.Render:
		fmt.Printf("Opening %s.\n", route.Name)
	default:
		return describeDenial(d)
	}
	return nil
}

func describeDenial(d guard.Decision) error {
	switch d.Action {
	case guard.RedirectLogin:
		return fmt.Errorf("please log in first (then you will land on %s)", d.From)
	case guard.ShowDenied:
		return fmt.Errorf("you do not have permission to view this page")
	default:
		return fmt.Errorf("session is still loading, try again")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: clubcli <command>

commands:
  login [identifier]  log in with a username or email
  logout              discard the saved session
  whoami              show the logged-in identity
  members             list club members
  open <view>         open a view (login, dashboard, members, admin)`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "clubcli:", err)
	os.Exit(1)
}
