package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	loginPromptPending() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	UpdateEmail(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	List(ctx context.Context) error
	Take(ctx context.Context, id string) error
	Results(ctx context.Context) error
	Result(ctx context.Context, id string) error
	Users(ctx context.Context) error
	RemoveUser(ctx context.Context, id string) error
	AddQuestionnaire(ctx context.Context) error
	EditQuestionnaire(ctx context.Context, id string) error
	RemoveQuestionnaire(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, active bool) error
	Questions(ctx context.Context, id string) error
	EditQuestion(ctx context.Context, questionnaireID, questionID string) error
	RemoveQuestion(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the mbticli client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help             — show available commands
//	  - list             — list active questionnaires
//	  - exit | quit      — leave the program
//
//	Not logged in:
//	  - register         — create an account
//	  - login            — authenticate
//
//	Logged in:
//	  - whoami | profile — show the current profile
//	  - email            — update the account email
//	  - passwd           — change the password
//	  - take <id>        — answer a questionnaire and see the result
//	  - results          — list past test results
//	  - result <id>      — show one result in detail
//	  - logout           — log out
//
//	Admins additionally:
//	  - users            — list registered users
//	  - rmuser <id>      — delete a user
//	  - addq             — create a questionnaire
//	  - editq <id>       — edit a questionnaire's title/description
//	  - rmq <id>         — delete a questionnaire
//	  - publish <id>     — activate a questionnaire
//	  - unpublish <id>   — deactivate a questionnaire
//	  - questions <id>            — list a questionnaire's questions
//	  - editquestion <qid> <id>   — replace a question
//	  - rmquestion <id>           — delete a question
//
// For admins, list shows all questionnaires including unpublished ones.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if a.loginPromptPending() {
			printlnFn("Your session has expired, please log in again.")
		}

		printlnFn(fmt.Sprintf("mbti> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami", "profile":
			_ = a.Whoami(ctx)

		case "email":
			_ = a.UpdateEmail(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "take":
			if arg == "" {
				printlnFn("Usage: take <questionnaire id>")
				continue
			}
			_ = a.Take(ctx, arg)

		case "results":
			_ = a.Results(ctx)

		case "result":
			if arg == "" {
				printlnFn("Usage: result <result id>")
				continue
			}
			_ = a.Result(ctx, arg)

		case "users":
			_ = a.Users(ctx)

		case "rmuser":
			if arg == "" {
				printlnFn("Usage: rmuser <user id>")
				continue
			}
			_ = a.RemoveUser(ctx, arg)

		case "addq":
			_ = a.AddQuestionnaire(ctx)

		case "editq":
			if arg == "" {
				printlnFn("Usage: editq <questionnaire id>")
				continue
			}
			_ = a.EditQuestionnaire(ctx, arg)

		case "questions":
			if arg == "" {
				printlnFn("Usage: questions <questionnaire id>")
				continue
			}
			_ = a.Questions(ctx, arg)

		case "editquestion":
			if len(parts) < 3 {
				printlnFn("Usage: editquestion <questionnaire id> <question id>")
				continue
			}
			_ = a.EditQuestion(ctx, parts[1], parts[2])

		case "rmquestion":
			if arg == "" {
				printlnFn("Usage: rmquestion <question id>")
				continue
			}
			_ = a.RemoveQuestion(ctx, arg)

		case "rmq":
			if arg == "" {
				printlnFn("Usage: rmq <questionnaire id>")
				continue
			}
			_ = a.RemoveQuestionnaire(ctx, arg)

		case "publish":
			if arg == "" {
				printlnFn("Usage: publish <questionnaire id>")
				continue
			}
			_ = a.SetPublished(ctx, arg, true)

		case "unpublish":
			if arg == "" {
				printlnFn("Usage: unpublish <questionnaire id>")
				continue
			}
			_ = a.SetPublished(ctx, arg, false)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, (l)ist, exit")
		return
	}
	if a.isAdmin() {
		printlnFn("Available commands: whoami, email, passwd, (l)ist, take <id>, results, result <id>, users, rmuser <id>, addq, editq <id>, rmq <id>, publish <id>, unpublish <id>, questions <id>, editquestion <qid> <id>, rmquestion <id>, logout, exit")
		return
	}
	printlnFn("Available commands: whoami, email, passwd, (l)ist, take <id>, results, result <id>, logout, exit")
}
