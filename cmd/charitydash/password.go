package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"charitydash/internal/auth"

	"github.com/urfave/cli/v2"
)

var hashPasswordCommand = &cli.Command{
	Name:      "hash-password",
	Usage:     "Print a bcrypt hash for the password_hash field of login.json",
	ArgsUsage: "[password]",
	Action: func(c *cli.Context) error {
		password := c.Args().First()
		if password == "" {
			// read from stdin so the password stays out of shell history
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password from stdin: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		if password == "" {
			return fmt.Errorf("password is required")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		fmt.Println(hash)
		return nil
	},
}
