package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/client/client"
	"github.com/dmitrijs2005/pokegate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage: list [limit] [offset]")

// Login prompts for a username and password and opens a session. The
// password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return err
	}

	a.userName = userName
	printlnFn("Login successful")
	return nil
}

// Status asks the server who the current session belongs to and syncs the
// prompt with the answer.
func (a *App) Status(ctx context.Context) error {
	s, err := a.api.Status(ctx)
	if err != nil {
		return err
	}
	if !s.Success || s.User == nil {
		a.userName = ""
		printlnFn("Not logged in")
		return nil
	}
	a.userName = s.User.Username
	printlnFn("Logged in as", s.User.Username)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	limit, offset, err := parsePage(args)
	if err != nil {
		return err
	}

	page, err := a.api.List(ctx, limit, offset)
	if err != nil {
		return a.sessionLost(err)
	}

	for _, r := range page.Results {
		printlnFn(r.Name)
	}
	printlnFn(fmt.Sprintf("-- %d of %d", len(page.Results), page.Count))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	p, err := a.api.Get(ctx, args[0])
	if err != nil {
		return a.sessionLost(err)
	}
	printlnFn(formatPokemon(p))
	return nil
}

// Logout clears the session both on the server and locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

// sessionLost forgets the local user when the server stops accepting the
// session cookie.
func (a *App) sessionLost(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.userName = ""
	}
	return err
}

func parsePage(args []string) (int, int, error) {
	if len(args) > 2 {
		return 0, 0, errUsage
	}
	vals := [2]int{}
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, errUsage
		}
		vals[i] = n
	}
	return vals[0], vals[1], nil
}

func formatPokemon(p *catalog.Pokemon) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", p.ID, p.Name)
	fmt.Fprintf(&b, "  height: %d  weight: %d  base experience: %d\n", p.Height, p.Weight, p.BaseExperience)

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}
	fmt.Fprintf(&b, "  types: %s\n", strings.Join(types, ", "))

	abilities := make([]string, 0, len(p.Abilities))
	for _, ab := range p.Abilities {
		name := ab.Ability.Name
		if ab.IsHidden {
			name += " (hidden)"
		}
		abilities = append(abilities, name)
	}
	fmt.Fprintf(&b, "  abilities: %s\n", strings.Join(abilities, ", "))

	for _, s := range p.Stats {
		fmt.Fprintf(&b, "  %-16s %d\n", s.Stat.Name, s.BaseStat)
	}
	return strings.TrimRight(b.String(), "\n")
}

// describe turns client errors into short user-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, client.ErrUnauthorized):
		return "not logged in or session expired, use 'login'"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
