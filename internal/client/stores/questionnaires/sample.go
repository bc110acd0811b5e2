package questionnaires

import "github.com/frostedstar/mbticli/internal/client/api"

// sampleQuestionnaires is the fixed catalogue shown when the backend is
// unreachable. Content mirrors the platform's seed data.
func sampleQuestionnaires() []api.Questionnaire {
	return []api.Questionnaire{
		{
			QuestionnaireID: 1,
			Title:           "Classic MBTI Personality Test",
			Description:     "The standard MBTI type assessment: understand your personality traits and behavioral patterns.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T08:00:00",
			IsPublished:     true,
			AnswerCount:     1520,
		},
		{
			QuestionnaireID: 2,
			Title:           "Workplace Personality Analysis",
			Description:     "Designed for professionals: discover your strengths and growth directions at work.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T09:00:00",
			IsPublished:     true,
			AnswerCount:     890,
			HasAnswered:     true,
		},
		{
			QuestionnaireID: 3,
			Title:           "Emotional Tendencies Test",
			Description:     "Explore how you process emotions and relate to other people.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T10:00:00",
			IsPublished:     true,
			AnswerCount:     654,
		},
		{
			QuestionnaireID: 4,
			Title:           "Learning Style Assessment",
			Description:     "Understand your learning preferences and cognitive style.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T11:00:00",
			IsPublished:     true,
			AnswerCount:     423,
		},
		{
			QuestionnaireID: 5,
			Title:           "Leadership Style Test",
			Description:     "Assess your leadership potential and management style.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T12:00:00",
			IsPublished:     true,
			AnswerCount:     312,
		},
		{
			QuestionnaireID: 6,
			Title:           "Communication Style Assessment",
			Description:     "Learn your communication preferences and sharpen interpersonal skills.",
			CreatorID:       1,
			CreatorUsername: "admin",
			CreatedAt:       "2025-07-01T14:00:00",
			IsPublished:     true,
			AnswerCount:     189,
		},
	}
}

// sampleQuestions is the fallback four-question test, one per MBTI axis.
func sampleQuestions(questionnaireID int64) *api.QuestionnaireDetail {
	return &api.QuestionnaireDetail{
		QuestionnaireID: questionnaireID,
		Title:           "Classic MBTI Personality Test",
		Description:     "The standard MBTI type assessment.",
		Questions: []api.Question{
			{
				QuestionID:    1,
				Content:       "In social settings, you tend to:",
				Dimension:     "E/I",
				QuestionOrder: 1,
				Options: []api.Option{
					{OptionID: 1, Content: "Start conversations with others", Score: 1},
					{OptionID: 2, Content: "Wait for others to approach you", Score: -1},
				},
			},
			{
				QuestionID:    2,
				Content:       "When taking in new information, you focus on:",
				Dimension:     "S/N",
				QuestionOrder: 2,
				Options: []api.Option{
					{OptionID: 3, Content: "Concrete facts and details", Score: -1},
					{OptionID: 4, Content: "Overall concepts and possibilities", Score: 1},
				},
			},
			{
				QuestionID:    3,
				Content:       "When making decisions, you rely on:",
				Dimension:     "T/F",
				QuestionOrder: 3,
				Options: []api.Option{
					{OptionID: 5, Content: "Logical analysis and objective criteria", Score: 1},
					{OptionID: 6, Content: "Personal values and others' feelings", Score: -1},
				},
			},
			{
				QuestionID:    4,
				Content:       "When it comes to plans, you prefer to:",
				Dimension:     "J/P",
				QuestionOrder: 4,
				Options: []api.Option{
					{OptionID: 7, Content: "Make detailed plans and stick to them", Score: 1},
					{OptionID: 8, Content: "Stay flexible and adjust as you go", Score: -1},
				},
			},
		},
	}
}
