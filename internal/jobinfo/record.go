package jobinfo

import "strings"

// Unknown marks a field the job description never stated. Extraction
// fills gaps with this marker instead of inventing values.
const Unknown = "unknown"

// Record is the structured summary extracted from a job description.
type Record struct {
	JobTitle  string   `json:"job_title"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	JobType   string   `json:"job_type"`
	KeySkills []string `json:"key_skills"`
}

// Normalize trims fields and fills anything the model left blank with
// the unknown marker. Key skills keep their order, minus blanks.
func (r *Record) Normalize() {
	r.JobTitle = orUnknown(r.JobTitle)
	r.Company = orUnknown(r.Company)
	r.Location = orUnknown(r.Location)
	r.JobType = strings.ToLower(orUnknown(r.JobType))

	skills := make([]string, 0, len(r.KeySkills))
	for _, skill := range r.KeySkills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}
	r.KeySkills = skills
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return s
}
