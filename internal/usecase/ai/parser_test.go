package ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
)

const fullReply = `{
  "summary": "Team agreed to ship v2",
  "keyDecisions": ["Ship v2 on Friday"],
  "actionItems": [{"task": "Write release notes", "assignee": "Ann"}, {"task": "Tag release", "assignee": null}],
  "unansweredQuestions": ["Who owns QA?"],
  "followUps": ["Check metrics Monday"],
  "highlights": [
    {"moment": "Go decision", "type": "decision", "intensity": 9, "participants": ["Ann"], "context": "final call"}
  ]
}`

func TestParse_Direct(t *testing.T) {
	a, err := NewParser().Parse(fullReply)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if a.Summary != "Team agreed to ship v2" {
		t.Fatalf("unexpected summary %q", a.Summary)
	}
	if len(a.ActionItems) != 2 || a.ActionItems[0].Assignee != "Ann" || a.ActionItems[1].Assignee != "" {
		t.Fatalf("unexpected action items %+v", a.ActionItems)
	}
	if len(a.Highlights) != 1 || a.Highlights[0].Type != entities.HighlightDecision || a.Highlights[0].Intensity != 9 {
		t.Fatalf("unexpected highlights %+v", a.Highlights)
	}
}

func TestParse_Fenced(t *testing.T) {
	reply := "Here is the analysis:\n```json\n" + fullReply + "\n```\nHope this helps."
	a, err := NewParser().Parse(reply)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(a.KeyDecisions) != 1 {
		t.Fatalf("expected 1 decision, got %+v", a.KeyDecisions)
	}
}

func TestParse_Substring(t *testing.T) {
	reply := `Sure! {"summary": "short", "keyDecisions": []} -- end`
	a, err := NewParser().Parse(reply)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if a.Summary != "short" {
		t.Fatalf("unexpected summary %q", a.Summary)
	}
}

func TestParse_FailureIsParseKind(t *testing.T) {
	for _, reply := range []string{"", "not json at all", "{broken", "[1,2,3]", "```\nnull\n```"} {
		_, err := NewParser().Parse(reply)
		if !pkgai.IsKind(err, pkgai.KindParse) {
			t.Fatalf("reply %q: expected parse error, got %v", reply, err)
		}
	}
}

func TestParse_NormalizesMissingFields(t *testing.T) {
	a, err := NewParser().Parse(`{}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if a.Summary != entities.NoSummary {
		t.Fatalf("expected default summary, got %q", a.Summary)
	}
	if a.KeyDecisions == nil || a.ActionItems == nil || a.UnansweredQuestions == nil || a.FollowUps == nil || a.Highlights == nil {
		t.Fatalf("lists must never be nil: %+v", a)
	}
}

func TestParse_Lenient(t *testing.T) {
	reply := `{
		"summary": "  ",
		"keyDecisions": "Only one decision",
		"actionItems": ["Call the vendor", {"task": ""}, {"task": "Book room", "assignee": "Bo"}],
		"followUps": null,
		"highlights": [
			{"moment": "A", "type": "Turning Point", "intensity": "12"},
			{"moment": "B", "type": "mystery"},
			{"moment": "", "type": "decision", "intensity": 10},
			{"moment": "C", "type": "conflict", "intensity": -4}
		]
	}`
	a, err := NewParser().Parse(reply)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if a.Summary != entities.NoSummary {
		t.Fatalf("blank summary should fall back, got %q", a.Summary)
	}
	if len(a.KeyDecisions) != 1 || a.KeyDecisions[0] != "Only one decision" {
		t.Fatalf("string should become one-element list, got %+v", a.KeyDecisions)
	}
	if len(a.ActionItems) != 2 || a.ActionItems[0].Task != "Call the vendor" || a.ActionItems[1].Assignee != "Bo" {
		t.Fatalf("unexpected action items %+v", a.ActionItems)
	}
	if len(a.FollowUps) != 0 {
		t.Fatalf("null list should be empty, got %+v", a.FollowUps)
	}

	if len(a.Highlights) != 3 {
		t.Fatalf("blank moment should be dropped, got %+v", a.Highlights)
	}
	first, second, third := a.Highlights[0], a.Highlights[1], a.Highlights[2]
	if first.Moment != "A" || first.Intensity != 10 || first.Type != entities.HighlightTurningPoint {
		t.Fatalf("unexpected first highlight %+v", first)
	}
	if second.Moment != "B" || second.Intensity != entities.DefaultHighlightIntensity || second.Type != entities.HighlightInsight {
		t.Fatalf("unexpected second highlight %+v", second)
	}
	if third.Moment != "C" || third.Intensity != 1 {
		t.Fatalf("unexpected third highlight %+v", third)
	}
}

func TestParse_HighlightsCappedAndStable(t *testing.T) {
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, fmt.Sprintf(`{"moment": "m%d", "type": "insight", "intensity": %d}`, i, 5+i%2))
	}
	a, err := NewParser().Parse(`{"highlights": [` + strings.Join(parts, ",") + `]}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(a.Highlights) != entities.MaxHighlights {
		t.Fatalf("expected %d highlights, got %d", entities.MaxHighlights, len(a.Highlights))
	}
	want := []string{"m1", "m3", "m5", "m7", "m9", "m11", "m0", "m2"}
	for i, h := range a.Highlights {
		if h.Moment != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], h.Moment)
		}
	}
}

func TestParse_SkipsMalformedHighlightElements(t *testing.T) {
	a, err := NewParser().Parse(`{"highlights": [
		{"moment": "m1", "type": "decision", "intensity": 9},
		"oops",
		42,
		{"moment": "m2", "type": "insight", "intensity": 3}
	]}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(a.Highlights) != 2 {
		t.Fatalf("expected the 2 object highlights to survive, got %+v", a.Highlights)
	}
	if a.Highlights[0].Moment != "m1" || a.Highlights[1].Moment != "m2" {
		t.Fatalf("unexpected highlights %+v", a.Highlights)
	}
}

func TestParse_ExtremeIntensityClamped(t *testing.T) {
	cases := map[string]int{
		`1e30`:   entities.MaxHighlightIntensity,
		`-1e30`:  entities.MinHighlightIntensity,
		`"1e30"`: entities.MaxHighlightIntensity,
		`"NaN"`:  entities.DefaultHighlightIntensity,
		`7.9`:    7,
		`"lots"`: entities.DefaultHighlightIntensity,
	}
	for raw, want := range cases {
		a, err := NewParser().Parse(`{"highlights": [{"moment": "m", "intensity": ` + raw + `}]}`)
		if err != nil {
			t.Fatalf("%s: Parse error: %v", raw, err)
		}
		if len(a.Highlights) != 1 || a.Highlights[0].Intensity != want {
			t.Fatalf("%s: expected intensity %d, got %+v", raw, want, a.Highlights)
		}
	}
}

func TestNormalizeAnalysis(t *testing.T) {
	in := &entities.MeetingAnalysis{
		ActionItems: []entities.ActionItem{{Task: " "}, {Task: "Do it"}},
		Highlights:  []entities.Highlight{{Moment: "x", Type: "weird", Intensity: 0}},
	}
	out := NormalizeAnalysis(in)
	if out.Summary != entities.NoSummary || len(out.ActionItems) != 1 {
		t.Fatalf("unexpected normalization %+v", out)
	}
	if out.Highlights[0].Type != entities.HighlightInsight || out.Highlights[0].Intensity != 1 {
		t.Fatalf("unexpected highlight %+v", out.Highlights[0])
	}
	if NormalizeAnalysis(nil).KeyDecisions == nil {
		t.Fatal("nil input should yield empty analysis")
	}
}
