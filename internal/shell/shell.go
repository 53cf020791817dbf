// Package shell is the interactive, menu-driven front end. It reads one
// answer per line, turns answers into session commands and renders results.
// All decisions about data live in the core; the shell only prompts and prints.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/app"
	"github.com/roach88/fittrack/internal/identity"
	"github.com/roach88/fittrack/internal/session"
)

// Shell runs the menu loop over an input and an output stream.
type Shell struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
	log *zap.Logger
}

// New creates a Shell.
func New(a *app.App, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		app: a,
		in:  bufio.NewScanner(in),
		out: out,
		log: log.Named("shell"),
	}
}

// Run shows the welcome menu until the user quits or input ends.
// End of input is treated as Quit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println()
		s.println("Welcome to Fitness Tracker!")
		s.println("1. Log In")
		s.println("2. Create Account")
		s.println("3. Quit")
		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return s.quit(err)
		}

		switch choice {
		case "1":
			sess, err := s.login(ctx)
			if err != nil {
				return s.quit(err)
			}
			if sess != nil {
				if err := s.mainMenu(ctx, sess); err != nil {
					return s.quit(err)
				}
			}
		case "2":
			if err := s.createAccount(ctx); err != nil {
				return s.quit(err)
			}
		case "3":
			s.println("Exiting...")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) createAccount(ctx context.Context) error {
	username, err := s.prompt("Enter your desired username: ")
	if err != nil {
		return err
	}
	if err := identity.ValidateUsername(username); err != nil {
		s.println("Username must be at least 5 characters long.")
		return nil
	}
	password, err := s.prompt("Enter your password: ")
	if err != nil {
		return err
	}
	if err := identity.ValidatePassword(password); err != nil {
		s.println("Password must be at least 7 characters long, contain at least 1 uppercase letter, and 1 special character.")
		return nil
	}

	if err := s.app.CreateAccount(ctx, username, password); err != nil {
		s.printf("Error creating account: %s\n", describe(err))
		return nil
	}
	s.println("Account created successfully.")
	return nil
}

func (s *Shell) login(ctx context.Context) (*session.Session, error) {
	username, err := s.prompt("Enter your username: ")
	if err != nil {
		return nil, err
	}
	password, err := s.prompt("Enter your password: ")
	if err != nil {
		return nil, err
	}

	sess, ok, err := s.app.Login(ctx, username, password)
	if err != nil {
		s.printf("Error logging in: %s\n", describe(err))
		return nil, nil
	}
	if !ok {
		s.println("Invalid username or password.")
		return nil, nil
	}
	s.println("Login successful.")
	return sess, nil
}

func (s *Shell) mainMenu(ctx context.Context, sess *session.Session) error {
	for {
		s.println("Fitness Tracker Menu:")
		s.println("1. Log Exercise")
		s.println("2. View Exercise Log")
		s.println("3. Mark Exercise as Completed")
		s.println("4. Manage Workout Categories")
		s.println("5. Manage Workout Goals")
		s.println("6. View Progress towards Fitness Goals")
		s.println("9. Quit")
		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.logExercise(ctx, sess)
		case "2":
			s.viewLogs(ctx, sess)
		case "3":
			err = s.completeLog(ctx, sess)
		case "4":
			err = s.manageCategories(ctx, sess)
		case "5":
			err = s.manageGoals(ctx, sess)
		case "6":
			s.viewProgress(ctx, sess)
		case "9":
			s.println("Exiting...")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

// prompt writes label and reads one trimmed line.
// Returns io.EOF when input is exhausted.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// ask prompts for each label in order and stores the answers under keys.
func (s *Shell) ask(fields ...[2]string) (map[string]string, error) {
	args := make(map[string]string, len(fields))
	for _, f := range fields {
		v, err := s.prompt(f[1])
		if err != nil {
			return nil, err
		}
		args[f[0]] = v
	}
	return args, nil
}

// run parses and dispatches one command, printing failure as
// "<errPrefix>: <reason>". Returns false on failure.
func (s *Shell) run(ctx context.Context, sess *session.Session, op session.Op, args map[string]string, errPrefix string) (session.Result, bool) {
	cmd, err := session.ParseCommand(string(op), args)
	if err == nil {
		var res session.Result
		res, err = sess.Dispatch(ctx, cmd)
		if err == nil {
			return res, true
		}
	}
	s.log.Debug("command failed", zap.String("op", string(op)), zap.Error(err))
	s.printf("%s: %s\n", errPrefix, describe(err))
	return session.Result{}, false
}

func (s *Shell) quit(err error) error {
	if errors.Is(err, io.EOF) {
		s.println()
		s.println("Exiting...")
		return nil
	}
	return err
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
