package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListQuestionnaires returns a page of all questionnaires. Admin only.
func (c *Client) ListQuestionnaires(ctx context.Context, page, size int) (*QuestionnairePage, error) {
	var p QuestionnairePage
	path := fmt.Sprintf("/api/questionnaires?page=%d&size=%d", page, size)
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ActiveQuestionnaires returns the published questionnaires visible to users.
func (c *Client) ActiveQuestionnaires(ctx context.Context) ([]Questionnaire, error) {
	var qs []Questionnaire
	if err := c.getJSON(ctx, "/api/questionnaires/active", &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// QuestionnaireDetail returns one questionnaire's summary.
func (c *Client) QuestionnaireDetail(ctx context.Context, id int64) (*Questionnaire, error) {
	var q Questionnaire
	if err := c.getJSON(ctx, fmt.Sprintf("/api/questionnaires/%d", id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// QuestionnaireQuestions returns a questionnaire together with its questions.
func (c *Client) QuestionnaireQuestions(ctx context.Context, id int64) (*QuestionnaireDetail, error) {
	var d QuestionnaireDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/api/questionnaires/%d/questions", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateQuestionnaire creates a questionnaire. Admin only.
func (c *Client) CreateQuestionnaire(ctx context.Context, title, description string) (*Questionnaire, error) {
	body := map[string]string{"title": title, "description": description}

	var q Questionnaire
	if err := c.sendJSON(ctx, http.MethodPost, "/api/questionnaires", body, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestionnaire updates title/description. Admin only.
func (c *Client) UpdateQuestionnaire(ctx context.Context, id int64, title, description string) (*Questionnaire, error) {
	body := map[string]string{"title": title, "description": description}

	var q Questionnaire
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/questionnaires/%d", id), body, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuestionnaire removes a questionnaire. Admin only.
func (c *Client) DeleteQuestionnaire(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/questionnaires/%d", id), nil, nil)
}

// SetQuestionnaireStatus publishes or unpublishes a questionnaire. Admin only.
func (c *Client) SetQuestionnaireStatus(ctx context.Context, id int64, active bool) (*Questionnaire, error) {
	var q Questionnaire
	path := fmt.Sprintf("/api/questionnaires/%d/status?active=%t", id, active)
	if err := c.sendJSON(ctx, http.MethodPut, path, nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
