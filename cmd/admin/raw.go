package admin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/pmkv/cmd/util"
	"github.com/ValentinKolb/pmkv/lib/admin"
	"github.com/ValentinKolb/pmkv/lib/app"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/spf13/cobra"
)

var (
	rawCommands = &cobra.Command{
		Use:   "raw",
		Short: "Direct access to the stored tables and records",
		Long:  `Direct access to the stored tables and records. Paths are separated by slashes, e.g. "people/A1". Values are read and written as JSON.`,
	}
	rawLsCmd = &cobra.Command{
		Use:   "ls [path]",
		Short: "Lists the keys at a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: rawAction(func(sh *admin.Shell, args []string) error {
			if len(args) == 1 {
				if err := cdPath(sh, args[0]); err != nil {
					return err
				}
			}
			for _, k := range sh.List() {
				fmt.Println(k)
			}
			return nil
		}),
	}
	rawShowCmd = &cobra.Command{
		Use:   "show [path]",
		Short: "Prints everything below a path as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: rawAction(func(sh *admin.Shell, args []string) error {
			if len(args) == 1 {
				if err := cdPath(sh, args[0]); err != nil {
					return err
				}
			}
			out, err := sh.Show()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}),
	}
	rawGetCmd = &cobra.Command{
		Use:   "get [path] [key]",
		Short: "Prints the value stored under key",
		Args:  cobra.ExactArgs(2),
		RunE: rawAction(func(sh *admin.Shell, args []string) error {
			if err := cdPath(sh, args[0]); err != nil {
				return err
			}
			out, err := sh.Get(args[1])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}),
	}
	rawSetCmd = &cobra.Command{
		Use:   "set [path] [key] [json]",
		Short: "Stores a JSON value under key",
		Args:  cobra.ExactArgs(3),
		RunE: rawAction(func(sh *admin.Shell, args []string) error {
			if err := cdPath(sh, args[0]); err != nil {
				return err
			}
			if err := sh.Put(args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		}),
	}
	rawDeleteCmd = &cobra.Command{
		Use:   "delete [path] [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(2),
		RunE: rawAction(func(sh *admin.Shell, args []string) error {
			if err := cdPath(sh, args[0]); err != nil {
				return err
			}
			if err := sh.Delete(args[1]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		}),
	}
	rawShellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Starts an interactive shell on the database",
		Long:  `Starts an interactive shell on the database. Commands: ls, cd <key>, cd .., cd /, show, get <key>, set <key> <json>, del <key>, exit. Keys containing spaces can be quoted. Changes are saved on exit.`,
		Args:  cobra.NoArgs,
		RunE: rawAction(func(sh *admin.Shell, _ []string) error {
			return runShell(sh, os.Stdin, os.Stdout)
		}),
	}
)

func init() {
	rawCommands.AddCommand(rawLsCmd)
	rawCommands.AddCommand(rawShowCmd)
	rawCommands.AddCommand(rawGetCmd)
	rawCommands.AddCommand(rawSetCmd)
	rawCommands.AddCommand(rawDeleteCmd)
	rawCommands.AddCommand(rawShellCmd)
}

// rawAction runs fn on a shell over the database if the session may access it raw
func rawAction(fn func(sh *admin.Shell, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return util.WithSession(cmd, func(a *app.App, s *workflow.Session) error {
			if !a.Engine.Can(s, workflow.ActRawAccess) {
				return store.Validationf("role %s may not access the database directly", s.Login.Role)
			}
			return fn(admin.NewShell(a.DB), args)
		})
	}
}

// cdPath moves the shell along a slash separated path
func cdPath(sh *admin.Shell, path string) error {
	if strings.HasPrefix(path, "/") {
		sh.Home()
	}
	for _, key := range strings.Split(path, "/") {
		if key == "" {
			continue
		}
		if err := sh.Cd(key); err != nil {
			return err
		}
	}
	return nil
}

// runShell reads commands from in until exit or EOF
func runShell(sh *admin.Shell, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", sh.Path())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		args := splitArgs(line, 0)
		if len(args) > 0 && args[0] == "set" {
			args = splitArgs(line, 3)
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := shellCommand(sh, args, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func shellCommand(sh *admin.Shell, args []string, out io.Writer) error {
	want := func(n int) error {
		if len(args) != n+1 {
			return fmt.Errorf("%s takes %d argument(s)", args[0], n)
		}
		return nil
	}

	switch args[0] {
	case "ls":
		for _, k := range sh.List() {
			fmt.Fprintln(out, k)
		}
	case "show":
		s, err := sh.Show()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case "cd":
		if err := want(1); err != nil {
			return err
		}
		switch args[1] {
		case "/":
			sh.Home()
		case "..":
			path := strings.TrimPrefix(sh.Path(), "/")
			sh.Home()
			if i := strings.LastIndex(path, "/"); i >= 0 {
				return cdPath(sh, path[:i])
			}
		default:
			return sh.Cd(args[1])
		}
	case "get":
		if err := want(1); err != nil {
			return err
		}
		s, err := sh.Get(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case "set":
		if err := want(2); err != nil {
			return err
		}
		return sh.Put(args[1], args[2])
	case "del", "delete":
		if err := want(1); err != nil {
			return err
		}
		return sh.Delete(args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

// splitArgs splits a line at spaces. Double quotes group words. If n > 0,
// the n-th argument is the unsplit remainder of the line.
func splitArgs(line string, n int) []string {
	var args []string
	var cur strings.Builder
	quoted, started := false, false
	for i, r := range line {
		if n > 0 && len(args) == n-1 && !started && r != ' ' {
			return append(args, strings.TrimSpace(line[i:]))
		}
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}
