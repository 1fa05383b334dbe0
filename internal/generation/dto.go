package generation

import "jobforge-backend/internal/jobinfo"

// GenerateRequest is the body for POST /api/v1/generate.
type GenerateRequest struct {
	JobDescription string `json:"job_description"`
}

// GenerateResponse carries the artifacts of a completed generation. The
// resume itself is fetched separately through ResumeURL.
type GenerateResponse struct {
	ID        string         `json:"id"`
	JobInfo   jobinfo.Record `json:"job_info"`
	Email     string         `json:"email"`
	ResumeURL string         `json:"resume_url"`
}
