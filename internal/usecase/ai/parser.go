package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Parser turns raw model text into a normalized MeetingAnalysis
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// rawAnalysis defers decoding of every field so that loosely shaped model
// output (a string where a list belongs, numbers as strings) still parses.
type rawAnalysis struct {
	Summary             json.RawMessage `json:"summary"`
	KeyDecisions        json.RawMessage `json:"keyDecisions"`
	ActionItems         json.RawMessage `json:"actionItems"`
	UnansweredQuestions json.RawMessage `json:"unansweredQuestions"`
	FollowUps           json.RawMessage `json:"followUps"`
	Highlights          json.RawMessage `json:"highlights"`
}

type rawHighlight struct {
	Timestamp    json.RawMessage `json:"timestamp"`
	Moment       json.RawMessage `json:"moment"`
	Type         json.RawMessage `json:"type"`
	Intensity    json.RawMessage `json:"intensity"`
	Participants json.RawMessage `json:"participants"`
	Context      json.RawMessage `json:"context"`
}

type rawActionItem struct {
	Task     json.RawMessage `json:"task"`
	Assignee json.RawMessage `json:"assignee"`
}

// Parse tries, in order, the whole text, the first fenced code block and the
// span from the first '{' to the last '}'. The first candidate that decodes
// as a JSON object wins.
func (p *Parser) Parse(text string) (*entities.MeetingAnalysis, error) {
	var lastErr error
	for _, candidate := range candidates(text) {
		var raw rawAnalysis
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			lastErr = err
			continue
		}
		return normalize(&raw), nil
	}
	if lastErr == nil {
		lastErr = errors.New("no JSON object in response")
	}
	return nil, &pkgai.Error{Kind: pkgai.KindParse, Err: lastErr}
}

func candidates(text string) []string {
	text = strings.TrimSpace(text)
	out := make([]string, 0, 3)
	if strings.HasPrefix(text, "{") {
		out = append(out, text)
	}
	if strings.Contains(text, "```") {
		if m := fencedBlock.FindStringSubmatch(text); m != nil {
			if block := strings.TrimSpace(m[1]); strings.HasPrefix(block, "{") {
				out = append(out, block)
			}
		}
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		out = append(out, text[start:end+1])
	}
	return out
}

func normalize(raw *rawAnalysis) *entities.MeetingAnalysis {
	a := entities.EmptyAnalysis()
	if s := decodeString(raw.Summary); s != "" {
		a.Summary = s
	}
	a.KeyDecisions = decodeStringList(raw.KeyDecisions)
	a.ActionItems = decodeActionItems(raw.ActionItems)
	a.UnansweredQuestions = decodeStringList(raw.UnansweredQuestions)
	a.FollowUps = decodeStringList(raw.FollowUps)
	a.Highlights = decodeHighlights(raw.Highlights)
	return a
}

// NormalizeAnalysis applies the same invariants to an already decoded analysis
func NormalizeAnalysis(a *entities.MeetingAnalysis) *entities.MeetingAnalysis {
	if a == nil {
		return entities.EmptyAnalysis()
	}
	out := entities.EmptyAnalysis()
	if s := strings.TrimSpace(a.Summary); s != "" {
		out.Summary = s
	}
	out.KeyDecisions = cleanStrings(a.KeyDecisions)
	out.UnansweredQuestions = cleanStrings(a.UnansweredQuestions)
	out.FollowUps = cleanStrings(a.FollowUps)
	for _, item := range a.ActionItems {
		if task := strings.TrimSpace(item.Task); task != "" {
			out.ActionItems = append(out.ActionItems, entities.ActionItem{Task: task, Assignee: strings.TrimSpace(item.Assignee)})
		}
	}
	for _, h := range a.Highlights {
		if strings.TrimSpace(h.Moment) == "" {
			continue
		}
		h.Moment = strings.TrimSpace(h.Moment)
		h.Type = entities.ParseHighlightType(string(h.Type))
		h.Intensity = entities.ClampIntensity(h.Intensity)
		h.Participants = cleanStrings(h.Participants)
		out.Highlights = append(out.Highlights, h)
	}
	out.Highlights = rankHighlights(out.Highlights)
	return out
}

func decodeString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeStringList(raw json.RawMessage) []string {
	out := []string{}
	if isNull(raw) {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := decodeString(raw); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range items {
		if s := decodeString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodeActionItems(raw json.RawMessage) []entities.ActionItem {
	out := []entities.ActionItem{}
	if isNull(raw) {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		items = []json.RawMessage{raw}
	}
	for _, item := range items {
		if task := decodeString(item); task != "" {
			out = append(out, entities.ActionItem{Task: task})
			continue
		}
		var obj rawActionItem
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		task := decodeString(obj.Task)
		if task == "" {
			continue
		}
		assignee := decodeString(obj.Assignee)
		if strings.EqualFold(assignee, "null") {
			assignee = ""
		}
		out = append(out, entities.ActionItem{Task: task, Assignee: assignee})
	}
	return out
}

func decodeHighlights(raw json.RawMessage) []entities.Highlight {
	out := []entities.Highlight{}
	if isNull(raw) {
		return out
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		elems = []json.RawMessage{raw}
	}
	for _, elem := range elems {
		var item rawHighlight
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		moment := decodeString(item.Moment)
		if moment == "" {
			continue
		}
		out = append(out, entities.Highlight{
			Timestamp:    decodeString(item.Timestamp),
			Moment:       moment,
			Type:         entities.ParseHighlightType(decodeString(item.Type)),
			Intensity:    decodeIntensity(item.Intensity),
			Participants: decodeStringList(item.Participants),
			Context:      decodeString(item.Context),
		})
	}
	return rankHighlights(out)
}

func decodeIntensity(raw json.RawMessage) int {
	s := decodeString(raw)
	if s == "" {
		return entities.DefaultHighlightIntensity
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return entities.DefaultHighlightIntensity
	}
	// clamp before converting; int() of an out-of-range float is undefined
	f = math.Max(entities.MinHighlightIntensity, math.Min(entities.MaxHighlightIntensity, f))
	return int(f)
}

// rankHighlights orders by intensity, most intense first, keeping model order
// on ties, and keeps at most MaxHighlights.
func rankHighlights(h []entities.Highlight) []entities.Highlight {
	sort.SliceStable(h, func(i, j int) bool { return h[i].Intensity > h[j].Intensity })
	if len(h) > entities.MaxHighlights {
		h = h[:entities.MaxHighlights]
	}
	return h
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
