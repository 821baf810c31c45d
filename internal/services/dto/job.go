package dto

import "pathpilot_backend/internal/models"

// SearchRequest - параметры поиска вакансий (GET /jobs/search)
type SearchRequest struct {
	Query    string `form:"q"`
	Location string `form:"location"`
	Remote   bool   `form:"remote"`
}

// JobPayload - вакансия, пришедшая от фронтенда для незаперсистенного
// результата поиска. Обязательные поля валидируются строго, без
// тихих дефолтов.
type JobPayload struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyURL    string `json:"apply_url" validate:"omitempty,url"`
}

// JobActionRequest - запись действия пользователя по вакансии
type JobActionRequest struct {
	JobID  int64       `json:"job_id"`
	Action string      `json:"action" validate:"required,oneof=viewed shortlisted redirected"`
	Job    *JobPayload `json:"job,omitempty"`
}

// CoverLetterRequest - job_id сохраненной вакансии, либо 0 + payload
type CoverLetterRequest struct {
	JobID int64       `json:"job_id"`
	Job   *JobPayload `json:"job,omitempty"`
}

type CoverLetterResponse struct {
	Text string `json:"text"`
}

// JobView - вакансия в ответе поиска с match score
type JobView struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	ApplyURL    string   `json:"apply_url,omitempty"`
	Source      string   `json:"source,omitempty"`
	MatchScore  float64  `json:"match_score"`
	Reasons     []string `json:"reasons"`
}

// SavedJobView - вакансия из списка пользователя со статусом действия
type SavedJobView struct {
	ID       int64                    `json:"id"`
	Title    string                   `json:"title"`
	Company  string                   `json:"company"`
	Location string                   `json:"location,omitempty"`
	ApplyURL string                   `json:"apply_url,omitempty"`
	Source   string                   `json:"source,omitempty"`
	Status   models.ApplicationStatus `json:"status"`
}

func NewJobView(sj models.ScoredJob) JobView {
	reasons := sj.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return JobView{
		ID:          sj.Job.ID,
		Title:       sj.Job.Title,
		Company:     sj.Job.Company,
		Location:    sj.Job.Location,
		Description: sj.Job.Description,
		ApplyURL:    sj.Job.ApplyURL,
		Source:      sj.Job.Source,
		MatchScore:  sj.Score,
		Reasons:     reasons,
	}
}
