package jobinfo

import "fmt"

func extractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`Extract the following from this job description and return as JSON:
- job_title: The job title/position
- company: The company name (or recruiter company if client not mentioned)
- location: The job location
- job_type: remote/hybrid/onsite
- key_skills: List of top 5-7 required skills

Use the string "unknown" for any field the description does not state. Never invent values.

Job Description:
%s

Return ONLY valid JSON, no other text:
{"job_title": "...", "company": "...", "location": "...", "job_type": "...", "key_skills": [...]}`, jobDescription)
}

func repairPrompt(malformed string) string {
	return fmt.Sprintf(`The following was supposed to be a single JSON object with the string keys job_title, company, location, job_type and the string array key_skills, but it could not be parsed:

%s

Return the corrected JSON object ONLY. No commentary, no code fences.`, malformed)
}
