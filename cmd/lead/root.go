package lead

import (
	"fmt"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	// LeadCommands represents the project lead command group
	LeadCommands = &cobra.Command{
		Use:   "lead",
		Short: "Operations of project leads",
	}
	createCmd = &cobra.Command{
		Use:   "create [name] [description]",
		Short: "Creates a new project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				p, err := a.Engine.CreateProject(s, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Printf("created project %s\n", p.ID)
				return nil
			})
		},
	}
	projectsCmd = &cobra.Command{
		Use:   "projects",
		Short: "Lists the projects you lead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				infos, err := a.Engine.Projects(s)
				if err != nil {
					return err
				}
				util.PrintProjects(infos)
				return nil
			})
		},
	}
	renameCmd = &cobra.Command{
		Use:   "rename [project-id] [name]",
		Short: "Renames a project",
		Args:  cobra.ExactArgs(2),
		RunE: projectAction("renamed", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.RenameProject(s, args[0], args[1])
		}),
	}
	describeCmd = &cobra.Command{
		Use:   "describe [project-id] [description]",
		Short: "Replaces the description of a project",
		Args:  cobra.ExactArgs(2),
		RunE: projectAction("updated", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.DescribeProject(s, args[0], args[1])
		}),
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Deletes a project",
		Args:  cobra.ExactArgs(1),
		RunE: projectAction("deleted", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.DeleteProject(s, args[0])
		}),
	}
	inviteCmd = &cobra.Command{
		Use:   "invite [project-id] [member]",
		Short: "Invites a member, addressed by id or username",
		Args:  cobra.ExactArgs(2),
		RunE: projectAction("invited", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.InviteMember(s, args[0], args[1])
		}),
	}
	advisorCmd = &cobra.Command{
		Use:   "request-advisor [project-id] [faculty]",
		Short: "Asks a faculty member to advise a project",
		Args:  cobra.ExactArgs(2),
		RunE: projectAction("requested", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.RequestAdvisor(s, args[0], args[1])
		}),
	}
	approvalCmd = &cobra.Command{
		Use:   "submit-approval [project-id]",
		Short: "Submits a project to its advisor for approval",
		Args:  cobra.ExactArgs(1),
		RunE: projectAction("submitted", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.SubmitForApproval(s, args[0])
		}),
	}
	evaluationCmd = &cobra.Command{
		Use:   "submit-evaluation [project-id]",
		Short: "Submits an approved project for evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: projectAction("submitted", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.SubmitForEvaluation(s, args[0])
		}),
	}
	reportCmd = &cobra.Command{
		Use:   "report [project-id] [report]",
		Short: "Attaches the final report to an evaluated project",
		Args:  cobra.ExactArgs(2),
		RunE: projectAction("submitted", func(a *app.App, s *workflow.Session, args []string) error {
			return a.Engine.SubmitReport(s, args[0], args[1])
		}),
	}
	becomeMemberCmd = &cobra.Command{
		Use:   "become-member",
		Short: "Switches to the member role. Led projects and invitations are dropped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.Become(s, identity.Member); err != nil {
					return err
				}
				fmt.Println("you are now a project member")
				return nil
			})
		},
	}
)

func init() {
	util.SetupSessionFlags(LeadCommands)

	LeadCommands.AddCommand(createCmd)
	LeadCommands.AddCommand(projectsCmd)
	LeadCommands.AddCommand(renameCmd)
	LeadCommands.AddCommand(describeCmd)
	LeadCommands.AddCommand(deleteCmd)
	LeadCommands.AddCommand(inviteCmd)
	LeadCommands.AddCommand(advisorCmd)
	LeadCommands.AddCommand(approvalCmd)
	LeadCommands.AddCommand(evaluationCmd)
	LeadCommands.AddCommand(reportCmd)
	LeadCommands.AddCommand(becomeMemberCmd)
}

// projectAction runs fn in a session and reports success with verb
func projectAction(verb string, fn func(a *app.App, s *workflow.Session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
			if err := fn(a, s, args); err != nil {
				return err
			}
			fmt.Printf("%s successfully\n", verb)
			return nil
		})
	}
}
