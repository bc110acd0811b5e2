package api

// Role is the server-side user role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the profile snapshot the session layer caches. Replaced wholesale on
// login and profile refresh, cleared on logout.
type User struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CreatedAt   string `json:"createdAt"`
	AnswerCount int    `json:"answerCount,omitempty"`
}

// LoginResult is the login endpoint's payload. Unlike every other endpoint it
// arrives without the response envelope.
type LoginResult struct {
	Token    string   `json:"token"`
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type Questionnaire struct {
	QuestionnaireID int64  `json:"questionnaireId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CreatorID       int64  `json:"creatorId"`
	CreatorUsername string `json:"creatorUsername"`
	CreatedAt       string `json:"createdAt"`
	IsPublished     bool   `json:"isPublished"`
	AnswerCount     int    `json:"answerCount"`
	HasAnswered     bool   `json:"hasAnswered"`
}

type Option struct {
	OptionID int64  `json:"optionId"`
	Content  string `json:"content"`
	Score    int    `json:"score"`
}

type Question struct {
	QuestionID    int64    `json:"questionId"`
	Content       string   `json:"content"`
	Dimension     string   `json:"dimension"`
	QuestionOrder int      `json:"questionOrder"`
	Options       []Option `json:"options"`
}

// QuestionnaireDetail is a questionnaire together with its question list.
type QuestionnaireDetail struct {
	QuestionnaireID int64      `json:"questionnaireId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Questions       []Question `json:"questions"`
}

// DimensionScores holds the four MBTI axis scores.
type DimensionScores struct {
	EI int `json:"EI"`
	SN int `json:"SN"`
	TF int `json:"TF"`
	JP int `json:"JP"`
}

// TestSubmission is the server's answer to a submitted test.
type TestSubmission struct {
	AnswerID        int64           `json:"answerId"`
	MbtiType        string          `json:"mbtiType"`
	DimensionScores DimensionScores `json:"dimensionScores"`
	SubmittedAt     string          `json:"submittedAt"`
}

type TestResult struct {
	AnswerID           int64  `json:"answerId"`
	QuestionnaireID    int64  `json:"questionnaireId"`
	QuestionnaireTitle string `json:"questionnaireTitle"`
	MbtiType           string `json:"mbtiType"`
	SubmittedAt        string `json:"submittedAt"`
}

// TestResultDetail is a single past result with its scores.
type TestResultDetail struct {
	AnswerID           int64           `json:"answerId"`
	QuestionnaireID    int64           `json:"questionnaireId"`
	QuestionnaireTitle string          `json:"questionnaireTitle"`
	MbtiType           string          `json:"mbtiType"`
	DimensionScores    DimensionScores `json:"dimensionScores"`
	SubmittedAt        string          `json:"submittedAt"`
}

// UserPage is a page of users (admin listing).
type UserPage struct {
	Content       []User `json:"content"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Number        int    `json:"number"`
	Size          int    `json:"size"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
}

// QuestionnairePage is a page of questionnaires (admin listing).
type QuestionnairePage struct {
	Content       []Questionnaire `json:"content"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
	First         bool            `json:"first"`
	Last          bool            `json:"last"`
}
