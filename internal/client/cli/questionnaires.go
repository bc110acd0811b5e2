package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/frostedstar/mbticli/internal/client/guard"
)

var testRoute = guard.Route{Name: "test", RequiresAuth: true}

// List prints the questionnaire catalogue. Regular users see the published
// ones; when the server is down the store serves its built-in samples, so the
// command still produces output. Admins get the full listing, unpublished
// entries included, since those are exactly the ones awaiting a publish.
func (a *App) List(ctx context.Context) error {
	if a.isAdmin() {
		if err := a.qs.FetchAll(ctx); err != nil {
			printlnFn("Could not list questionnaires:", err.Error())
			return err
		}
		for _, q := range a.qs.All() {
			state := "unpublished"
			if q.IsPublished {
				state = "published"
			}
			printlnFn(fmt.Sprintf("[%d] %s — %s (%s, %d answers)",
				q.QuestionnaireID, q.Title, q.Description, state, q.AnswerCount))
		}
		return nil
	}

	a.qs.Fetch(ctx)

	for _, q := range a.qs.Active() {
		answered := " "
		if q.HasAnswered {
			answered = "*"
		}
		printlnFn(fmt.Sprintf("[%d]%s %s — %s (%d answers)",
			q.QuestionnaireID, answered, q.Title, q.Description, q.AnswerCount))
	}
	return nil
}

// Take walks the user through a questionnaire and submits the answers.
func (a *App) Take(ctx context.Context, id string) error {
	if !a.allowed(ctx, testRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", id)
		return nil
	}

	detail, err := a.qs.Questions(ctx, qid)
	if err != nil {
		printlnFn("Could not load questionnaire:", err.Error())
		return err
	}
	if len(detail.Questions) == 0 {
		printlnFn("Questionnaire has no questions")
		return nil
	}

	printlnFn(detail.Title)
	if detail.Description != "" {
		printlnFn(detail.Description)
	}

	answers := make(map[int64]int64, len(detail.Questions))
	for i, q := range detail.Questions {
		printlnFn(fmt.Sprintf("\n%d/%d. %s", i+1, len(detail.Questions), q.Content))
		for n, opt := range q.Options {
			printlnFn(fmt.Sprintf("  %d) %s", n+1, opt.Content))
		}

		choice, err := GetInt(a.reader, "Your answer", 1, len(q.Options), os.Stdout)
		if err != nil {
			return err
		}
		answers[q.QuestionID] = q.Options[choice-1].OptionID
	}

	sub, err := a.ts.Submit(ctx, qid, detail.Title, answers)
	if err != nil {
		printlnFn("Submission failed:", err.Error())
		return err
	}

	a.qs.MarkAnswered(qid)

	printlnFn("\nYour type: " + sub.MbtiType)
	printScores(sub.DimensionScores)
	return nil
}
