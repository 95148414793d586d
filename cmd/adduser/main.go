// Command adduser creates the local DashLens account.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dashlens/dashlens/internal/credential"
	"github.com/dashlens/dashlens/internal/dbx"
	"github.com/dashlens/dashlens/internal/storage"
	"github.com/dashlens/dashlens/internal/users"
	"golang.org/x/term"
)

const defaultDBPath = "dashlens.db"

// hasher is a seam so tests can use cheap parameters.
var hasher = credential.NewHasher(credential.DefaultParams)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	passwordFlag := fs.String("password", "", "Password (prompted for when omitted)")
	dbPath := fs.String("db", defaultDBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-password <password>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// The env var only applies when -db was left at its default.
	if path := os.Getenv("DASHLENS_DB_PATH"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}

	ctx := context.Background()

	db, err := storage.Open(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var user *users.User
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		if _, err := repo.GetByUsername(ctx, *username); err == nil {
			return fmt.Errorf("user %s already exists", *username)
		} else if !errors.Is(err, users.ErrNotFound) {
			return fmt.Errorf("failed to look up user: %w", err)
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}

		user, err = repo.Create(ctx, *username, hash)
		if err != nil {
			if errors.Is(err, users.ErrAlreadyExists) {
				return fmt.Errorf("user %s already exists", *username)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
