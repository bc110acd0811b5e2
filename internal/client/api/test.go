package api

import (
	"context"
	"fmt"
	"net/http"
)

// SubmitAnswers sends a completed test. answers maps question ID to the
// chosen option ID.
func (c *Client) SubmitAnswers(ctx context.Context, questionnaireID int64, answers map[int64]int64) (*TestSubmission, error) {
	// The contract keys question IDs as strings in the JSON object.
	qa := make(map[string]int64, len(answers))
	for questionID, optionID := range answers {
		qa[fmt.Sprintf("%d", questionID)] = optionID
	}
	body := map[string]any{
		"questionnaireId": questionnaireID,
		"questionAnswers": qa,
	}

	var s TestSubmission
	if err := c.sendJSON(ctx, http.MethodPost, "/api/test/submit", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TestResults returns the current user's past results, newest first.
func (c *Client) TestResults(ctx context.Context) ([]TestResult, error) {
	var rs []TestResult
	if err := c.getJSON(ctx, "/api/test/results", &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// TestResultDetail returns one result with its dimension scores.
func (c *Client) TestResultDetail(ctx context.Context, answerID int64) (*TestResultDetail, error) {
	var d TestResultDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/api/test/results/%d", answerID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}
