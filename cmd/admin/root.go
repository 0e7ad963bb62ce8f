package admin

import (
	"fmt"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	// AdminCommands represents the administrator command group
	AdminCommands = &cobra.Command{
		Use:   "admin",
		Short: "Operations of administrators",
	}
	queueCmd = &cobra.Command{
		Use:   "queue",
		Short: "Lists projects waiting for an evaluator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				items, err := a.Engine.EvaluationQueue(s)
				if err != nil {
					return err
				}
				util.PrintItems("projects waiting for evaluation", items)
				return nil
			})
		},
	}
	assignCmd = &cobra.Command{
		Use:   "assign [index] [evaluator]",
		Short: "Assigns a queued project to a faculty member for evaluation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := util.ParseIndex(args[0])
			if err != nil {
				return err
			}
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.AssignEvaluator(s, i, args[1]); err != nil {
					return err
				}
				fmt.Println("assigned successfully")
				return nil
			})
		},
	}
)

func init() {
	util.SetupSessionFlags(AdminCommands)

	AdminCommands.AddCommand(queueCmd)
	AdminCommands.AddCommand(assignCmd)
	AdminCommands.AddCommand(rawCommands)
}
