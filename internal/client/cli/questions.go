package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/frostedstar/mbticli/internal/client/api"
)

// Questions lists a questionnaire's questions with their ids, so an admin can
// pick one to edit or remove.
func (a *App) Questions(ctx context.Context, id string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", id)
		return nil
	}

	qs, err := a.api.QuestionsByQuestionnaire(ctx, qid)
	if err != nil {
		printlnFn("Could not load questions:", err.Error())
		return err
	}
	if len(qs) == 0 {
		printlnFn("Questionnaire has no questions")
		return nil
	}

	for _, q := range qs {
		printlnFn(fmt.Sprintf("[%d] #%d %s (%s)", q.QuestionID, q.QuestionOrder, q.Content, q.Dimension))
		for _, opt := range q.Options {
			printlnFn(fmt.Sprintf("      %+d %s", opt.Score, opt.Content))
		}
	}
	return nil
}

// EditQuestion replaces a question's content, dimension and options.
func (a *App) EditQuestion(ctx context.Context, questionnaireID, questionID string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	qid, err := strconv.ParseInt(questionnaireID, 10, 64)
	if err != nil {
		printlnFn("Not a questionnaire id:", questionnaireID)
		return nil
	}
	id, err := strconv.ParseInt(questionID, 10, 64)
	if err != nil {
		printlnFn("Not a question id:", questionID)
		return nil
	}

	content, err := GetSimpleText(a.reader, "Question text", os.Stdout)
	if err != nil {
		return err
	}
	dim, err := a.readDimension()
	if err != nil {
		return err
	}
	order, err := GetInt(a.reader, "Question order", 1, 999, os.Stdout)
	if err != nil {
		return err
	}
	opts, err := a.readOptions()
	if err != nil {
		return err
	}

	req := api.CreateQuestionRequest{
		QuestionnaireID: qid,
		Content:         content,
		Dimension:       dim,
		QuestionOrder:   order,
		Options:         opts,
	}
	if _, err := a.api.UpdateQuestion(ctx, id, req); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Question updated")
	return nil
}

// RemoveQuestion deletes a question with its options.
func (a *App) RemoveQuestion(ctx context.Context, id string) error {
	if !a.allowed(ctx, adminRoute) {
		return nil
	}

	questionID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Not a question id:", id)
		return nil
	}

	if err := a.api.DeleteQuestion(ctx, questionID); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Question deleted")
	return nil
}
