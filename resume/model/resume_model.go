package model

import (
	"errors"
	"fmt"
	"strings"
)

// TailoredResume is the canonical resume payload produced by content
// synthesis and consumed by the renderers.
type TailoredResume struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	LinkedIn   string       `json:"linkedin"`
	Summary    string       `json:"summary"`
	Skills     []SkillGroup `json:"skills"`
	Experience []Experience `json:"experience"`
}

// SkillGroup is one labeled row of the skills section. Groups keep
// slice order so the same content always renders the same way.
type SkillGroup struct {
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Experience is a work history entry, newest first.
type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Dates    string   `json:"dates"`
	Points   []string `json:"points"`
}

// Validate enforces the minimum a resume needs before rendering.
func (m TailoredResume) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(m.Summary) == "" {
		return errors.New("summary is required")
	}
	for i, group := range m.Skills {
		if strings.TrimSpace(group.Category) == "" {
			return fmt.Errorf("skills[%d].category is required", i)
		}
	}
	for i, exp := range m.Experience {
		if strings.TrimSpace(exp.Title) == "" && strings.TrimSpace(exp.Company) == "" {
			return fmt.Errorf("experience[%d] must name a title or company", i)
		}
	}
	return nil
}

// Normalize trims whitespace and drops empty entries so equal content
// yields equal render input.
func (m *TailoredResume) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Title = strings.TrimSpace(m.Title)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Location = strings.TrimSpace(m.Location)
	m.LinkedIn = strings.TrimSpace(m.LinkedIn)
	m.Summary = strings.TrimSpace(m.Summary)

	skills := make([]SkillGroup, 0, len(m.Skills))
	for _, group := range m.Skills {
		group.Category = strings.TrimSpace(group.Category)
		group.Items = strings.TrimSpace(group.Items)
		if group.Category == "" && group.Items == "" {
			continue
		}
		skills = append(skills, group)
	}
	m.Skills = skills

	experience := make([]Experience, 0, len(m.Experience))
	for _, exp := range m.Experience {
		exp.Title = strings.TrimSpace(exp.Title)
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Location = strings.TrimSpace(exp.Location)
		exp.Dates = strings.TrimSpace(exp.Dates)
		points := make([]string, 0, len(exp.Points))
		for _, point := range exp.Points {
			point = strings.TrimSpace(point)
			if point == "" {
				continue
			}
			points = append(points, point)
		}
		exp.Points = points
		if exp.Title == "" && exp.Company == "" && len(exp.Points) == 0 {
			continue
		}
		experience = append(experience, exp)
	}
	m.Experience = experience
}
