package command

import (
	"context"
	"errors"
	"time"

	"pms/internal/service"

	"github.com/spf13/cobra"
)

type TokenHandler struct {
	authService *service.AuthService
}

func NewTokenHandler(authService *service.AuthService) *TokenHandler {
	return &TokenHandler{authService: authService}
}

// Issue 為既有且啟用中的使用者簽發 token
func (handler *TokenHandler) Issue(cmd *cobra.Command, userUUID string) error {
	if userUUID == "" {
		return errors.New("--user is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	issued, err := handler.authService.IssueToken(ctx, userUUID)
	if err != nil {
		return err
	}
	cmd.Println(issued.Token)
	cmd.PrintErrf("expires at %s\n", issued.ExpiresAt.Format(time.RFC3339))
	return nil
}
