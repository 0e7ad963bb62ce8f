package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupSessionFlags adds the credential flags to a command group
func SetupSessionFlags(cmd *cobra.Command) {
	key := "user"
	cmd.PersistentFlags().StringP(key, "u", "", WrapString("Username to log in with"))

	key = "password"
	cmd.PersistentFlags().StringP(key, "p", "", WrapString("Password to log in with. Prefer the PMKV_PASSWORD environment variable"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pmkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetConfig reads the process configuration from viper
func GetConfig() *common.Config {
	return &common.Config{
		DataDir:    viper.GetString("data-dir"),
		RosterPath: viper.GetString("roster"),
		RosterKey:  viper.GetString("roster-key"),
		LoginsPath: viper.GetString("logins"),
		LogLevel:   viper.GetString("log-level"),
		LogFormat:  viper.GetString("log-format"),
		Metrics:    viper.GetBool("metrics"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// WithApp opens the application, runs fn and saves the database afterwards.
// The database is saved even if fn fails, since a failed action never
// leaves a partial update behind.
func WithApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	if err := BindCommandFlags(cmd); err != nil {
		return err
	}
	config := GetConfig()
	if err := config.Validate(); err != nil {
		return err
	}
	if err := common.InitLoggers(config); err != nil {
		return err
	}

	a, err := app.Open(config)
	if err != nil {
		return err
	}
	if a.Bootstrapped {
		PrintCredentials(a)
	}

	runErr := fn(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if config.Metrics {
		common.WriteMetrics(os.Stderr)
	}
	return runErr
}

// WithSession is WithApp with an authenticated session
func WithSession(cmd *cobra.Command, fn func(a *app.App, s *workflow.Session) error) error {
	return WithApp(cmd, func(a *app.App) error {
		s, err := a.Engine.Login(viper.GetString("user"), viper.GetString("password"))
		if err != nil {
			return err
		}
		return fn(a, s)
	})
}

// PrintCredentials prints the generated credentials of a fresh bootstrap
func PrintCredentials(a *app.App) {
	if len(a.Credentials) == 0 {
		return
	}
	fmt.Println("Generated credentials (shown only once):")
	for _, c := range a.Credentials {
		fmt.Printf("  %-10s %-16s %s\n", c.ID, c.Username, c.Password)
	}
}

// ParseIndex parses a mailbox index argument
func ParseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("index must be a number: %w", err)
	}
	return i, nil
}

// ParseDecision parses an accept/reject argument
func ParseDecision(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "accept", "approve", "yes", "y", "positive":
		return true, nil
	case "reject", "no", "n", "negative":
		return false, nil
	}
	return false, fmt.Errorf("invalid decision %q (expected accept or reject)", arg)
}

// PrintItems prints a numbered mailbox listing
func PrintItems(title string, items []workflow.MailboxItem) {
	if len(items) == 0 {
		fmt.Printf("No %s.\n", title)
		return
	}
	fmt.Printf("%s:\n", strings.ToUpper(title[:1])+title[1:])
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
}

// PrintProjects prints a short project listing
func PrintProjects(infos []workflow.ProjectInfo) {
	if len(infos) == 0 {
		fmt.Println("No projects.")
		return
	}
	for _, info := range infos {
		fmt.Printf("  %s  %-24s %s\n", info.Project.ID, info.Project.Name, info.State)
	}
}

// PrintProjectInfo prints all details of a project
func PrintProjectInfo(info workflow.ProjectInfo) {
	field := func(name, value string) {
		fmt.Printf("  %-12s: %s\n", name, value)
	}
	field("ID", info.Project.ID)
	field("Name", info.Project.Name)
	field("Description", info.Project.Desc)
	field("Lead", info.LeadName)
	field("Members", strings.Join(info.MemberNames, ", "))
	field("Advisor", info.AdvisorName)
	field("State", info.State.String())
	if info.Project.Report != "" {
		field("Report", info.Project.Report)
	}
}
