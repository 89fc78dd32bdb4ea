package main

import (
	"fmt"
	"io"

	"locator/config"
	"locator/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func runToken(out io.Writer, rawUserID string) error {
	userID := uuid.New()
	if rawUserID != "" {
		parsed, err := uuid.Parse(rawUserID)
		if err != nil {
			return errors.Wrap(err, "invalid --user")
		}
		userID = parsed
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	tokens, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateAccessToken(userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "user:    %s\n", userID)
	fmt.Fprintf(out, "expires: %s\n", tokens.GetAccessTokenDuration())
	fmt.Fprintf(out, "token:   %s\n", token)

	return nil
}
