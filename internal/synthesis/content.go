package synthesis

import "jobforge-backend/resume/model"

// Content is the pair of artifacts produced by one synthesis call. Both
// come from the same completion so they never drift apart.
type Content struct {
	EmailBody string               `json:"email_body"`
	Resume    model.TailoredResume `json:"tailored_resume"`
}
