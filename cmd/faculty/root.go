package faculty

import (
	"fmt"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	// FacultyCommands represents the faculty and advisor command group
	FacultyCommands = &cobra.Command{
		Use:     "faculty",
		Aliases: []string{"advisor"},
		Short:   "Operations of faculty members and advisors",
	}
	advisorRequestsCmd = &cobra.Command{
		Use:   "advisor-requests",
		Short: "Lists projects asking you to be their advisor",
		Args:  cobra.NoArgs,
		RunE:  listing("advisor requests", (*workflow.Engine).AdvisorRequests),
	}
	approvalRequestsCmd = &cobra.Command{
		Use:   "approval-requests",
		Short: "Lists advised projects waiting for approval",
		Args:  cobra.NoArgs,
		RunE:  listing("approval requests", (*workflow.Engine).ApprovalRequests),
	}
	evaluationsCmd = &cobra.Command{
		Use:   "evaluations",
		Short: "Lists projects assigned to you for evaluation",
		Args:  cobra.NoArgs,
		RunE:  listing("evaluations", (*workflow.Engine).Evaluations),
	}
	projectsCmd = &cobra.Command{
		Use:   "projects",
		Short: "Lists the projects you advise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				infos, err := a.Engine.AdvisedProjects(s)
				if err != nil {
					return err
				}
				util.PrintProjects(infos)
				return nil
			})
		},
	}
	respondAdvisorCmd = &cobra.Command{
		Use:   "respond-advisor [index] [accept|reject]",
		Short: "Accepts or rejects an advisor request",
		Args:  cobra.ExactArgs(2),
		RunE:  decision((*workflow.Engine).RespondAdvisorRequest),
	}
	respondApprovalCmd = &cobra.Command{
		Use:   "respond-approval [index] [approve|reject]",
		Short: "Approves or rejects an approval request",
		Args:  cobra.ExactArgs(2),
		RunE:  decision((*workflow.Engine).RespondApprovalRequest),
	}
	evaluateCmd = &cobra.Command{
		Use:   "evaluate [index] [positive|negative]",
		Short: "Evaluates an assigned project",
		Args:  cobra.ExactArgs(2),
		RunE:  decision((*workflow.Engine).Evaluate),
	}
)

func init() {
	util.SetupSessionFlags(FacultyCommands)

	FacultyCommands.AddCommand(advisorRequestsCmd)
	FacultyCommands.AddCommand(approvalRequestsCmd)
	FacultyCommands.AddCommand(evaluationsCmd)
	FacultyCommands.AddCommand(projectsCmd)
	FacultyCommands.AddCommand(respondAdvisorCmd)
	FacultyCommands.AddCommand(respondApprovalCmd)
	FacultyCommands.AddCommand(evaluateCmd)
}

func listing(title string, list func(*workflow.Engine, *workflow.Session) ([]workflow.MailboxItem, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
			items, err := list(a.Engine, s)
			if err != nil {
				return err
			}
			util.PrintItems(title, items)
			return nil
		})
	}
}

func decision(respond func(*workflow.Engine, *workflow.Session, int, bool) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		i, err := util.ParseIndex(args[0])
		if err != nil {
			return err
		}
		yes, err := util.ParseDecision(args[1])
		if err != nil {
			return err
		}
		return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
			if err := respond(a.Engine, s, i, yes); err != nil {
				return err
			}
			fmt.Println("responded successfully")
			return nil
		})
	}
}
