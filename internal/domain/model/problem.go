package model

import (
	"strings"
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"
)

const leetCodeProblemsURL = "https://leetcode.com/problems/"

// ParseDifficulty normalizes s and reports whether it names a known difficulty.
func ParseDifficulty(s string) (ProblemDifficulty, bool) {
	d := ProblemDifficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return d, false
}

type Problem struct {
	ID            int64             `json:"id"`
	UserID        string            `json:"userId"`
	ProblemNumber int               `json:"problemNumber"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Difficulty    ProblemDifficulty `json:"difficulty"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	Notes         string            `json:"notes"`
	Solution      string            `json:"solution"`
	LeetCodeURL   string            `json:"leetcodeUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// FillDerived sets fields that are computed rather than stored.
func (p *Problem) FillDerived() {
	if p.Slug != "" {
		p.LeetCodeURL = leetCodeProblemsURL + p.Slug + "/"
	}
}

// ProblemInput is the client-supplied part of a Problem.
type ProblemInput struct {
	ProblemNumber int    `json:"problemNumber"`
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	Solution      string `json:"solution"`
}

// ProblemPatch carries a partial update; nil fields are left untouched.
type ProblemPatch struct {
	ProblemNumber *int               `json:"problemNumber,omitempty"`
	Title         *string            `json:"title,omitempty"`
	Slug          *string            `json:"-"`
	Difficulty    *ProblemDifficulty `json:"difficulty,omitempty"`
	Category      *string            `json:"category,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Solution      *string            `json:"solution,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProblemPatch) IsEmpty() bool {
	return p.ProblemNumber == nil && p.Title == nil && p.Slug == nil && p.Difficulty == nil &&
		p.Category == nil && p.Description == nil && p.Notes == nil && p.Solution == nil
}

type ProblemFilter struct {
	Search     string
	Difficulty ProblemDifficulty
	Category   string
	Limit      int
	Offset     int
}

type ProblemStats struct {
	Total  int `json:"total"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}
