package member

import (
	"fmt"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	// MemberCommands represents the student member command group
	MemberCommands = &cobra.Command{
		Use:   "member",
		Short: "Operations of project members",
	}
	invitationsCmd = &cobra.Command{
		Use:   "invitations",
		Short: "Lists pending project invitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				items, err := a.Engine.Invitations(s)
				if err != nil {
					return err
				}
				util.PrintItems("invitations", items)
				return nil
			})
		},
	}
	respondCmd = &cobra.Command{
		Use:   "respond [index] [accept|reject]",
		Short: "Accepts or rejects an invitation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := util.ParseIndex(args[0])
			if err != nil {
				return err
			}
			accept, err := util.ParseDecision(args[1])
			if err != nil {
				return err
			}
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.RespondInvitation(s, i, accept); err != nil {
					return err
				}
				fmt.Println("responded successfully")
				return nil
			})
		},
	}
	projectsCmd = &cobra.Command{
		Use:   "projects",
		Short: "Lists the projects you joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				infos, err := a.Engine.JoinedProjects(s)
				if err != nil {
					return err
				}
				util.PrintProjects(infos)
				return nil
			})
		},
	}
	becomeLeadCmd = &cobra.Command{
		Use:   "become-lead",
		Short: "Switches to the lead role. Joined projects and invitations are dropped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				if err := a.Engine.Become(s, identity.Lead); err != nil {
					return err
				}
				fmt.Println("you are now a project lead")
				return nil
			})
		},
	}
)

func init() {
	util.SetupSessionFlags(MemberCommands)

	MemberCommands.AddCommand(invitationsCmd)
	MemberCommands.AddCommand(respondCmd)
	MemberCommands.AddCommand(projectsCmd)
	MemberCommands.AddCommand(becomeLeadCmd)
}
