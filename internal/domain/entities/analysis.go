package entities

import "strings"

// Highlight bounds
const (
	MinHighlightIntensity     = 1
	MaxHighlightIntensity     = 10
	DefaultHighlightIntensity = 5
	MaxHighlights             = 8
)

// NoSummary is substituted when the model omits a summary
const NoSummary = "No summary available"

// MeetingAnalysis is the structured output of an LLM analysis.
// Every list is non-nil once normalized so clients never see null.
type MeetingAnalysis struct {
	Summary             string       `json:"summary"`
	KeyDecisions        []string     `json:"keyDecisions"`
	ActionItems         []ActionItem `json:"actionItems"`
	UnansweredQuestions []string     `json:"unansweredQuestions"`
	FollowUps           []string     `json:"followUps"`
	Highlights          []Highlight  `json:"highlights"`
}

// ActionItem represents a task extracted from the content
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
}

// HighlightType classifies a notable moment
type HighlightType string

const (
	HighlightDecision     HighlightType = "decision"
	HighlightBreakthrough HighlightType = "breakthrough"
	HighlightConflict     HighlightType = "conflict"
	HighlightInsight      HighlightType = "insight"
	HighlightEmotional    HighlightType = "emotional"
	HighlightTurningPoint HighlightType = "turning_point"
)

// ParseHighlightType maps loose model output ("Turning Point", "turning-point")
// onto a known type; anything unrecognized becomes an insight.
func ParseHighlightType(raw string) HighlightType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	switch t := HighlightType(normalized); t {
	case HighlightDecision, HighlightBreakthrough, HighlightConflict,
		HighlightInsight, HighlightEmotional, HighlightTurningPoint:
		return t
	}
	return HighlightInsight
}

// Highlight is a scored, typed moment of the analysed content
type Highlight struct {
	Timestamp    string        `json:"timestamp,omitempty"`
	Moment       string        `json:"moment"`
	Type         HighlightType `json:"type"`
	Intensity    int           `json:"intensity"`
	Participants []string      `json:"participants"`
	Context      string        `json:"context"`
}

// ClampIntensity bounds v to [MinHighlightIntensity, MaxHighlightIntensity]
func ClampIntensity(v int) int {
	if v < MinHighlightIntensity {
		return MinHighlightIntensity
	}
	if v > MaxHighlightIntensity {
		return MaxHighlightIntensity
	}
	return v
}

// EmptyAnalysis returns an analysis with every list initialized
func EmptyAnalysis() *MeetingAnalysis {
	return &MeetingAnalysis{
		Summary:             NoSummary,
		KeyDecisions:        []string{},
		ActionItems:         []ActionItem{},
		UnansweredQuestions: []string{},
		FollowUps:           []string{},
		Highlights:          []Highlight{},
	}
}
