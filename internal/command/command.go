package command

import (
	commandHandler "pms/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSchedulerHandler, commandHandler.NewTokenHandler)

type Command struct {
	schedulerHandler *commandHandler.SchedulerHandler
	tokenHandler     *commandHandler.TokenHandler
}

// NewCommand .
func NewCommand(
	schedulerHandler *commandHandler.SchedulerHandler,
	tokenHandler *commandHandler.TokenHandler,
) *Command {
	return &Command{
		schedulerHandler: schedulerHandler,
		tokenHandler:     tokenHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	var pass string
	runScheduler := &cobra.Command{
		Use:   "run-scheduler",
		Short: "run the daily rent / lease scheduler once",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.schedulerHandler.Run(cmd, pass)
		},
	}
	runScheduler.Flags().StringVar(&pass, "pass", "", "only run one pass: rent | lease")

	var userUUID string
	issueToken := &cobra.Command{
		Use:   "issue-token",
		Short: "issue a JWT for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.tokenHandler.Issue(cmd, userUUID)
		},
	}
	issueToken.Flags().StringVar(&userUUID, "user", "", "user uuid")

	rootCmd.AddCommand(runScheduler, issueToken)
}
