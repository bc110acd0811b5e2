package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/client/guard"
)

var resultsRoute = guard.Route{Name: "results", RequiresAuth: true}

// Results lists the user's past test results, newest first.
func (a *App) Results(ctx context.Context) error {
	if !a.allowed(ctx, resultsRoute) {
		return nil
	}

	a.ts.FetchResults(ctx)

	if !a.ts.HasResults() {
		printlnFn("No results yet, take a test first")
		return nil
	}

	for _, r := range a.ts.Results() {
		printlnFn(fmt.Sprintf("[%d] %s — %s (%s)",
			r.AnswerID, r.MbtiType, r.QuestionnaireTitle, r.SubmittedAt))
	}
	return nil
}

// Result shows a single past result with its dimension scores.
func (a *App) Result(ctx context.Context, id string) error {
	if !a.allowed(ctx, resultsRoute) {
		return nil
	}

	answerID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a result id:", id)
		return nil
	}

	d, err := a.ts.Detail(ctx, answerID)
	if err != nil {
		printlnFn("Could not load result:", err.Error())
		return err
	}

	printlnFn(d.QuestionnaireTitle)
	printlnFn("Type: " + d.MbtiType)
	printlnFn("Taken: " + d.SubmittedAt)
	printScores(d.DimensionScores)
	return nil
}

func printScores(s api.DimensionScores) {
	printlnFn(fmt.Sprintf("E/I: %d  S/N: %d  T/F: %d  J/P: %d", s.EI, s.SN, s.TF, s.JP))
}
