package synthesis

import (
	"fmt"
	"strings"

	"jobforge-backend/internal/jobinfo"
	"jobforge-backend/internal/profile"
)

const synthesisSystemPrompt = `Analyze the candidate profile and job description, then return ONE JSON object with this EXACT structure:
{
    "email_body": "short professional response email",
    "tailored_resume": {
        "name": "Full Name",
        "title": "Professional Title tailored to job",
        "email": "email address",
        "phone": "phone number",
        "location": "City, State",
        "linkedin": "linkedin URL or empty string",
        "summary": "3-4 sentence professional summary tailored to the job",
        "skills": [
            {"category": "Languages", "items": "Python, Java, JavaScript"},
            {"category": "Cloud & DevOps", "items": "AWS, Kubernetes, Docker"}
        ],
        "experience": [
            {
                "title": "Job Title",
                "company": "Company Name",
                "location": "City, State",
                "dates": "MMM YYYY - MMM YYYY",
                "points": [
                    "First bullet point achievement with metrics and numbers",
                    "Second bullet point achievement with specific results",
                    "Third bullet point showing technical skills used"
                ]
            }
        ]
    }
}

EMAIL REQUIREMENTS:
- SHORT (under 150 words) professional email expressing interest
- Thank them for reaching out
- Brief highlight of relevant experience (2-3 bullet points max)
- Mention availability for interview
- Professional signature with contact info
- Email body only, no subject line

RESUME REQUIREMENTS:
- "skills" MUST be an array of category objects, most relevant category first
- Each "items" value MUST be a comma-separated string like "Java, Python, JavaScript", never an array of characters
- Each job MUST have a "points" array with 3-5 bullet points taken from the profile, with metrics and specific technologies
- Include ALL work experience from the profile in REVERSE CHRONOLOGICAL ORDER (most recent job FIRST)
- DATE FORMAT IS MANDATORY: always "MMM YYYY - MMM YYYY" (e.g., "Sep 2022 - Oct 2023"), "Present" for current roles, NEVER YYYY-MM-DD
- Keep all information truthful from the profile, never invent employers, dates or achievements
- Prioritize the skills the job asks for
- Quantify achievements where possible

Return ONLY valid JSON, no other text.`

func synthesisUserPrompt(record jobinfo.Record, jobDescription string, prof profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job: %s at %s\n", record.JobTitle, record.Company)
	fmt.Fprintf(&b, "Location: %s (%s)\n", record.Location, record.JobType)
	if len(record.KeySkills) > 0 {
		fmt.Fprintf(&b, "Key Skills Required: %s\n", strings.Join(record.KeySkills, ", "))
	}
	fmt.Fprintf(&b, "\nJob Description:\n%s\n", jobDescription)

	b.WriteString("\nCandidate Info:\n")
	writeIdentityLine(&b, "Name", prof.Name)
	writeIdentityLine(&b, "Email", prof.Email)
	writeIdentityLine(&b, "Phone", prof.Phone)
	writeIdentityLine(&b, "LinkedIn", prof.LinkedIn)
	writeIdentityLine(&b, "Location", prof.Location)

	fmt.Fprintf(&b, "\nCandidate Profile:\n%s", prof.Compact())
	return b.String()
}

func writeIdentityLine(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
