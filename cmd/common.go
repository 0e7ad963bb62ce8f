package cmd

import (
	"fmt"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	projectInfoCmd = &cobra.Command{
		Use:   "info [project-id]",
		Short: "Show all details of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				info, err := a.Engine.ProjectInfo(s, args[0])
				if err != nil {
					return err
				}
				util.PrintProjectInfo(info)
				return nil
			})
		},
	}

	// messageCommands represents the message command group available to every role
	messageCommands = &cobra.Command{
		Use:   "msg",
		Short: "Read and send messages",
	}
	msgListCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				msgs, err := a.Engine.Messages(s)
				if err != nil {
					return err
				}
				if len(msgs) == 0 {
					fmt.Println("No messages.")
					return nil
				}
				for i, m := range msgs {
					fmt.Printf("%d. %s\n", i, m.Headline(a.Engine))
					if !m.IsNotice() && m.Content != "" {
						fmt.Printf("   %s\n", m.Content)
					}
				}
				return nil
			})
		},
	}
	msgDeleteCmd = &cobra.Command{
		Use:   "delete [index]",
		Short: "Deletes a message. The last message takes its place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := util.ParseIndex(args[0])
			if err != nil {
				return err
			}
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.DeleteMessage(s, i); err != nil {
					return err
				}
				fmt.Println("deleted successfully")
				return nil
			})
		},
	}
	msgClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Deletes all messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.ClearMessages(s); err != nil {
					return err
				}
				fmt.Println("cleared successfully")
				return nil
			})
		},
	}
	msgSendCmd = &cobra.Command{
		Use:   "send [recipient] [title] [content]",
		Short: "Sends a message to a person, addressed by id or username",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := ""
			if len(args) == 3 {
				content = args[2]
			}
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.SendMessage(s, args[0], args[1], content); err != nil {
					return err
				}
				fmt.Println("sent successfully")
				return nil
			})
		},
	}
)

func init() {
	messageCommands.AddCommand(msgListCmd)
	messageCommands.AddCommand(msgDeleteCmd)
	messageCommands.AddCommand(msgClearCmd)
	messageCommands.AddCommand(msgSendCmd)
}
