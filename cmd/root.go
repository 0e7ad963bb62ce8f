package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/pmkv/cmd/admin"
	"github.com/ValentinKolb/pmkv/cmd/faculty"
	"github.com/ValentinKolb/pmkv/cmd/lead"
	"github.com/ValentinKolb/pmkv/cmd/member"
	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "pmkv",
		Short: "project management on a persistent key-value store",
		Long: fmt.Sprintf(`pmKV (v%s)

A project lifecycle manager for student projects. People, logins,
projects and documents live in a nested key-value store that is
saved to a data directory after every command.

The configuration can be set via command line flags or environment
variables in the format PMKV_<flag> (e.g. PMKV_DATA_DIR=./database).`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pmKV",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pmKV v%s\n", Version)
		},
	}
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Bootstrap the database from the roster",
		Long:  `Bootstrap the database from the roster and the optional login feed. Generated passwords are printed once. If the data directory already holds a database, nothing is changed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithApp(cmd, func(a *app.App) error {
				if !a.Bootstrapped {
					fmt.Printf("database in %s already exists\n", a.Config.DataDir)
					return nil
				}
				fmt.Printf("bootstrapped %d people into %s\n", a.Roster.Loaded, a.Config.DataDir)
				return nil
			})
		},
	}
	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Log in and print the role and available actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
				fmt.Printf("%s (%s), role %s\n", a.Engine.NameOf(s.ID()), s.Login.Username, s.Login.Role)
				for _, action := range workflow.Actions(s.Login.Role) {
					fmt.Printf("  %s\n", action)
				}
				return nil
			})
		},
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			fmt.Print(util.GetConfig().String())
			return nil
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(whoamiCmd)
	RootCmd.AddCommand(messageCommands)
	RootCmd.AddCommand(projectInfoCmd)
	RootCmd.AddCommand(member.MemberCommands)
	RootCmd.AddCommand(lead.LeadCommands)
	RootCmd.AddCommand(faculty.FacultyCommands)
	RootCmd.AddCommand(admin.AdminCommands)

	util.SetupSessionFlags(whoamiCmd)
	util.SetupSessionFlags(messageCommands)
	util.SetupSessionFlags(projectInfoCmd)

	// Add Flags
	key := "data-dir"
	RootCmd.PersistentFlags().String(key, "database", util.WrapString("Directory the database is saved to"))
	key = "roster"
	RootCmd.PersistentFlags().String(key, "persons.csv", util.WrapString("CSV roster with the columns first, last and type, read when no database exists yet"))
	key = "roster-key"
	RootCmd.PersistentFlags().String(key, "ID", util.WrapString("Roster column holding the unique person id"))
	key = "logins"
	RootCmd.PersistentFlags().String(key, "login.csv", util.WrapString("Optional CSV login feed with the columns ID, username, password and role. Passwords are generated if the file does not exist"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
	key = "log-format"
	RootCmd.PersistentFlags().String(key, "pretty", util.WrapString("Log output format (json, pretty)"))
	key = "metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("Print all collected metrics to stderr on exit"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
