package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/guard"
)

var adminRoute = guard.Route{Name: "admin", RequiresAuth: true, RequiresAdmin: true}

// dimensions an admin can assign to a question.
var dimensions = []string{"EI", "SN", "TF", "JP"}

// Users lists registered users page by page.
func (a *App) Users(ctx context.Context) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	for page := 0; ; page++ {
		p, err := a.api.ListUsers(ctx, page, 20)
		if err != nil {
			printlnFn("Could not list users:", err.Error())
			return err
		}
		for _, u := range p.Content {
			printlnFn(fmt.Sprintf("[%d] %s <%s> %s, %d tests",
				u.UserID, u.Username, u.Email, u.Role, u.AnswerCount))
		}
		if p.Last {
			printlnFn(fmt.Sprintf("%d users total", p.TotalElements))
			return nil
		}
	}
}

// RemoveUser deletes a user account and everything it owns.
func (a *App) RemoveUser(ctx context.Context, id string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a user id:", id)
		return nil
	}

	if err := a.api.DeleteUser(ctx, userID); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("User deleted")
	return nil
}

// AddQuestionnaire creates a questionnaire and interactively adds questions to
// it. The questionnaire starts unpublished; use publish to activate it.
func (a *App) AddQuestionnaire(ctx context.Context) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	q, err := a.qs.Create(ctx, title, description)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Created questionnaire %d (unpublished)", q.QuestionnaireID))

	for order := 1; ; order++ {
		content, err := GetSimpleText(a.reader, "Question text (empty line to finish)", os.Stdout)
		if err != nil {
			return err
		}
		if content == "" {
			return nil
		}

		dim, err := a.readDimension()
		if err != nil {
			return err
		}

		opts, err := a.readOptions()
		if err != nil {
			return err
		}

		req := api.CreateQuestionRequest{
			QuestionnaireID: q.QuestionnaireID,
			Content:         content,
			Dimension:       dim,
			QuestionOrder:   order,
			Options:         opts,
		}
		if _, err := a.api.CreateQuestion(ctx, req); err != nil {
			printlnFn("Could not add question:", err.Error())
			return err
		}
		printlnFn("Question added")
	}
}

func (a *App) readDimension() (string, error) {
	prompt := "Dimension (" + strings.Join(dimensions, ", ") + ")"
	for {
		dim, err := GetSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return "", err
		}
		dim = strings.ToUpper(dim)
		for _, d := range dimensions {
			if dim == d {
				return dim, nil
			}
		}
		printlnFn("Unknown dimension:", dim)
	}
}

// readOptions collects answer options as "score text" lines, e.g. "2 Strongly
// agree", until an empty line. At least two options are required.
func (a *App) readOptions() ([]api.Option, error) {
	var opts []api.Option
	for {
		line, err := GetSimpleText(a.reader, "Option as '<score> <text>' (empty line to finish)", os.Stdout)
		if err != nil {
			return nil, err
		}
		if line == "" {
			if len(opts) < 2 {
				printlnFn("A question needs at least two options")
				continue
			}
			return opts, nil
		}

		score, text, ok := strings.Cut(line, " ")
		n, err := strconv.Atoi(score)
		if !ok || err != nil || strings.TrimSpace(text) == "" {
			printlnFn("Expected '<score> <text>', e.g. '2 Strongly agree'")
			continue
		}
		opts = append(opts, api.Option{Content: strings.TrimSpace(text), Score: n})
	}
}

// EditQuestionnaire changes a questionnaire's title and description.
func (a *App) EditQuestionnaire(ctx context.Context, id string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", id)
		return nil
	}

	title, err := GetSimpleText(a.reader, "New title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "New description", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.qs.Update(ctx, qid, title, description); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Questionnaire updated")
	return nil
}

// RemoveQuestionnaire deletes a questionnaire with its questions and answers.
func (a *App) RemoveQuestionnaire(ctx context.Context, id string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", id)
		return nil
	}

	if err := a.qs.Delete(ctx, qid); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Questionnaire deleted")
	return nil
}

// SetPublished activates or deactivates a questionnaire.
func (a *App) SetPublished(ctx context.Context, id string, active bool) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", id)
		return nil
	}

	if err := a.qs.SetStatus(ctx, qid, active); err != nil {
		printlnFn("Status change failed:", err.Error())
		return err
	}
	if active {
		printlnFn("Questionnaire published")
	} else {
		printlnFn("Questionnaire unpublished")
	}
	return nil
}
