package api

import (
	"context"
	"fmt"
	"net/http"
)

// QuestionsByQuestionnaire returns the question list of one questionnaire.
func (c *Client) QuestionsByQuestionnaire(ctx context.Context, questionnaireID int64) ([]Question, error) {
	var qs []Question
	path := fmt.Sprintf("/api/questions/questionnaire/%d", questionnaireID)
	if err := c.getJSON(ctx, path, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// CreateQuestionRequest carries a new question with its options.
type CreateQuestionRequest struct {
	QuestionnaireID int64    `json:"questionnaireId"`
	Content         string   `json:"content"`
	Dimension       string   `json:"dimension"`
	QuestionOrder   int      `json:"questionOrder"`
	Options         []Option `json:"options"`
}

// CreateQuestion adds a question to a questionnaire. Admin only.
func (c *Client) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*Question, error) {
	var q Question
	if err := c.sendJSON(ctx, http.MethodPost, "/api/questions", req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion replaces a question's content and options. Admin only.
func (c *Client) UpdateQuestion(ctx context.Context, questionID int64, req CreateQuestionRequest) (*Question, error) {
	var q Question
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/questions/%d", questionID), req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuestion removes a question. Admin only.
func (c *Client) DeleteQuestion(ctx context.Context, questionID int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/questions/%d", questionID), nil, nil)
}
