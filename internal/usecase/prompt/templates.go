package prompt

import "github.com/johnquangdev/meeting-recovery/internal/domain/entities"

// systemMessage pins the reply format; the parser still tolerates fences and prose
const systemMessage = "You are a meeting analysis expert. Always respond with valid JSON in the exact format specified. " +
	"Do not include any markdown formatting, code blocks, or explanatory text. Return only the raw JSON object."

// kindProfile describes how one content kind is framed
type kindProfile struct {
	DataType       string
	TopicLabel     string
	AttendeesLabel string
	ContextLabel   string
	ProcessText    string
	Examples       string
}

var kindProfiles = map[entities.ContentKind]kindProfile{
	entities.ContentMeetings: {
		DataType:       "meeting transcript",
		TopicLabel:     "Meeting Topic",
		AttendeesLabel: "Attendees",
		ContextLabel:   "Additional Context",
		ProcessText:    "meeting analysis",
		Examples:       "discussions, decisions, action items and follow-ups",
	},
	entities.ContentSocials: {
		DataType:       "chat logs or social thread",
		TopicLabel:     "Thread Topic",
		AttendeesLabel: "Participants",
		ContextLabel:   "Platform Context",
		ProcessText:    "social conversation analysis",
		Examples:       "discussions, reactions, sentiment and key themes",
	},
	entities.ContentNotes: {
		DataType:       "brainstorm notes or idea dump",
		TopicLabel:     "Session Title",
		AttendeesLabel: "Contributors",
		ContextLabel:   "Source Context",
		ProcessText:    "cognitive reorganization",
		Examples:       "ideas, themes, priorities and next steps",
	},
}

// lens is one analytical persona. Focus holds the per-kind instructions.
type lens struct {
	Name          string
	Title         string
	Focus         map[entities.ContentKind]string
	Reconstruct   bool
	Summary       string
	Decisions     string
	Task          string
	Questions     string
	FollowUps     string
	Highlights    bool
	HighlightNote string
	TypeGuide     []string
	Closing       string
}

var lenses = map[entities.Mode]lens{
	entities.ModeSynthrax: {
		Name:  "SYNTHRAX",
		Title: "The Analyst",
		Focus: map[entities.ContentKind]string{
			entities.ContentMeetings: "- Focus on facts, clarity and structured output\n" +
				"- Extract key topics, decisions, dates and action items\n" +
				"- Avoid speculation or emotional interpretation\n" +
				"- Follow the chronological flow and identify concrete outcomes",
			entities.ContentSocials: "- Organize chaotic conversation into clear themes\n" +
				"- Extract key points, reactions and emerging consensus\n" +
				"- Structure scattered discussion into logical categories\n" +
				"- Identify concrete outcomes and next steps",
			entities.ContentNotes: "- Structure scattered ideas into clear themes\n" +
				"- Group related concepts and identify patterns\n" +
				"- Build logical hierarchies and categorize information\n" +
				"- Turn raw thoughts into structured, actionable insights",
		},
		Reconstruct:   true,
		Summary:       "Factual, structured summary of the main topics and concrete outcomes",
		Decisions:     "Concrete decision",
		Task:          "Specific task with clear deliverables",
		Questions:     "Technical or logistical question",
		FollowUps:     "Next step or required documentation",
		Highlights:    true,
		HighlightNote: "technical impact",
		TypeGuide: []string{
			"DECISION: key technical or implementation choices",
			"BREAKTHROUGH: discoveries or problem solutions",
			"CONFLICT: disagreements about approach",
			"INSIGHT: important realizations",
			"EMOTIONAL: strong excitement or frustration",
			"TURNING_POINT: moments that changed direction",
		},
		Closing: "Extract only factual information. Suited to engineering syncs, sprint planning and product reviews.",
	},
	entities.ModeVantix: {
		Name:  "VANTIX",
		Title: "The Strategist",
		Focus: map[entities.ContentKind]string{
			entities.ContentMeetings: "- Focus on priorities, execution and foresight\n" +
				"- Identify high-impact items, risks and opportunities\n" +
				"- Group related items and suggest tactical follow-ups\n" +
				"- Assess strategic implications and prioritize decisions",
			entities.ContentSocials: "- Prioritize decisions and extract action items\n" +
				"- Identify high-impact discussions and emerging consensus\n" +
				"- Assess community sentiment and its strategic weight\n" +
				"- Recommend next steps based on thread momentum",
			entities.ContentNotes: "- Prioritize ideas and identify actionable items\n" +
				"- Assess strategic value and feasibility\n" +
				"- Group related concepts by execution priority\n" +
				"- Turn scattered thoughts into an action plan",
		},
		Reconstruct:   true,
		Summary:       "Strategic overview of implications, priorities and execution paths",
		Decisions:     "Strategic decision with impact assessment",
		Task:          "High-priority task with clear outcomes",
		Questions:     "Strategic or resource allocation question",
		FollowUps:     "Strategic next step or risk mitigation",
		Highlights:    true,
		HighlightNote: "strategic impact and business value",
		TypeGuide: []string{
			"DECISION: strategic choices with business impact",
			"BREAKTHROUGH: major strategic insights or solutions",
			"CONFLICT: competing priorities",
			"INSIGHT: strategic or market realizations",
			"EMOTIONAL: strategic excitement or concern",
			"TURNING_POINT: moments that changed strategic direction",
		},
		Closing: "Order items by importance and strategic value. Suited to leadership meetings, project updates and retrospectives.",
	},
	entities.ModeLymnia: {
		Name:  "LYMNIA",
		Title: "The Human Layer",
		Focus: map[entities.ContentKind]string{
			entities.ContentMeetings: "- Focus on emotion, tone and unspoken dynamics\n" +
				"- Surface team sentiment, conflicts and concerns\n" +
				"- Include meaningful quotes that reflect the atmosphere\n" +
				"- Analyze team dynamics and emotional undercurrents",
			entities.ContentSocials: "- Decode tone and detect emotional shifts\n" +
				"- Identify friction, uncertainty and community sentiment\n" +
				"- Analyze social dynamics and relationship patterns\n" +
				"- Highlight moments of connection, tension or consensus",
			entities.ContentNotes: "- Focus on the human context of the brainstorm\n" +
				"- Identify enthusiasm, concerns and interpersonal dynamics\n" +
				"- Analyze collaboration patterns\n" +
				"- Highlight creative breakthroughs and emotional moments",
		},
		Reconstruct:   true,
		Summary:       "Summary of emotional tone, team dynamics and human context",
		Decisions:     "Decision with its emotional context",
		Task:          "People-focused or relationship-building task",
		Questions:     "Interpersonal concern or team dynamics question",
		FollowUps:     "Check-in, relationship repair or clarification needed",
		Highlights:    true,
		HighlightNote: "emotional impact and interpersonal significance",
		TypeGuide: []string{
			"DECISION: decisions reached through consensus",
			"BREAKTHROUGH: moments of shared understanding",
			"CONFLICT: interpersonal tension",
			"INSIGHT: realizations about relationships",
			"EMOTIONAL: strong emotion such as joy or frustration",
			"TURNING_POINT: moments that changed the tone",
		},
		Closing: "Focus on human dynamics and emotional subtext. Suited to client meetings, conflict resolution and 1:1 check-ins.",
	},
	entities.ModeEmergency: {
		Name:  "EMERGENCY RECOVERY",
		Title: "Reconstruction",
		Focus: map[entities.ContentKind]string{
			entities.ContentMeetings: "- Reconstruct what most likely happened in the meeting",
			entities.ContentSocials:  "- Reconstruct what most likely happened in the conversation",
			entities.ContentNotes:    "- Reconstruct the most likely shape of the session's ideas",
		},
		Summary:   "Brief overview of what likely happened based on the available information",
		Decisions: "Plausible decision",
		Task:      "Realistic task description",
		Questions: "Open question",
		FollowUps: "Follow-up",
		Closing:   "Teams rely on this when they missed what happened. Deliver clarity with confidence.",
	},
}

const userTemplate = `You are the Meeting Recovery assistant operating in {{.Lens.Name}} MODE ("{{.Lens.Title}}").

You extract insight, structure and clarity from {{.Kind.DataType}}.

{{.Kind.TopicLabel}}: {{.Topic}}
{{.Kind.AttendeesLabel}}: {{.Attendees}}
{{.Kind.ContextLabel}}: {{.KnownInfo}}
Content: {{.Content}}

{{.Focus}}
{{if .Emergency}}
- Base the reconstruction on common {{.Kind.ProcessText}} patterns
- Be concise, specific and insightful
- Only generate content that is plausible, respectful and relevant
- Aim for realistic, actionable insight into {{.Kind.Examples}}
{{else if .Lens.Reconstruct}}
If the input is limited, reconstruct what likely occurred based on common {{.Kind.ProcessText}} patterns. Only generate content that is plausible, respectful and relevant.
{{end}}
Structure the output as JSON in exactly this shape:
{{.Schema}}
{{if .Lens.Highlights}}
For highlights, identify the most significant moments:
{{range .Lens.TypeGuide}}- {{.}}
{{end}}
Rate intensity 1-10 based on {{.Lens.HighlightNote}}. Include 3-8 highlights at most.
{{end}}
{{.Lens.Closing}}`

const schemaTemplate = `{
  "summary": "{{.Summary}}",
  "keyDecisions": ["{{.Decisions}}", ...],
  "actionItems": [{"task": "{{.Task}}", "assignee": "Person name or null"}, ...],
  "unansweredQuestions": ["{{.Questions}}", ...],
  "followUps": ["{{.FollowUps}}", ...]{{if .Highlights}},
  "highlights": [
    {
      "timestamp": "Optional timestamp or timeframe",
      "moment": "Brief description of the moment",
      "type": "decision|breakthrough|conflict|insight|emotional|turning_point",
      "intensity": 7,
      "participants": ["Person1", "Person2"],
      "context": "What happened and why it matters"
    }
  ]{{end}}
}`
