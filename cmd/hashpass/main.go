// Command hashpass prints a bcrypt hash for ADMIN_PASSWORD_HASH.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var cost = flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("while reading password: %w", err)
	}
	return pass, nil
}

func do() error {
	pass, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if len(pass) == 0 {
		return errors.New("password must not be empty")
	}
	confirm, err := readPassword("Confirm: ")
	if err != nil {
		return err
	}
	if !bytes.Equal(pass, confirm) {
		return errors.New("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword(pass, *cost)
	if err != nil {
		return fmt.Errorf("while hashing password: %w", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	return nil
}

func main() {
	flag.Parse()

	if err := do(); err != nil {
		slog.Error("hashpass failed", "error", err)
		os.Exit(1)
	}
}
