// Package prompt renders the model instructions for an analysis request.
// Rendering is pure: the same input always yields the same prompt.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

const (
	notSpecified = "Not specified"
	none         = "None"
)

var (
	userTmpl   = template.Must(template.New("user").Parse(userTemplate))
	schemaTmpl = template.Must(template.New("schema").Parse(schemaTemplate))
)

// Input is the content and context of one analysis
type Input struct {
	Transcript string
	Topic      string
	Attendees  string
	KnownInfo  string
	Mode       entities.Mode
	Kind       entities.ContentKind
}

// Spec is a rendered prompt ready to send to the model
type Spec struct {
	Mode   entities.Mode
	Kind   entities.ContentKind
	System string
	User   string
	// Content is the text actually analysed. In emergency mode with a blank
	// transcript it is the known info.
	Content string
	Schema  string
}

type renderData struct {
	Lens      lens
	Kind      kindProfile
	Topic     string
	Attendees string
	KnownInfo string
	Content   string
	Focus     string
	Schema    string
	Emergency bool
}

// Build renders the prompt for in
func Build(in Input) (*Spec, error) {
	if in.Mode == "" {
		in.Mode = entities.DefaultMode
	}
	if in.Kind == "" {
		in.Kind = entities.DefaultContentKind
	}
	l, ok := lenses[in.Mode]
	if !ok {
		return nil, entities.ErrInvalidMode
	}
	profile, ok := kindProfiles[in.Kind]
	if !ok {
		return nil, entities.ErrInvalidContentKind
	}

	content := strings.TrimSpace(in.Transcript)
	knownInfo := strings.TrimSpace(in.KnownInfo)
	if content == "" && in.Mode == entities.ModeEmergency {
		content = knownInfo
	}
	if content == "" {
		return nil, entities.ErrEmptyContent
	}

	var schema bytes.Buffer
	if err := schemaTmpl.Execute(&schema, l); err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}

	data := renderData{
		Lens:      l,
		Kind:      profile,
		Topic:     orDefault(in.Topic, notSpecified),
		Attendees: orDefault(in.Attendees, notSpecified),
		KnownInfo: orDefault(knownInfo, none),
		Content:   content,
		Focus:     l.Focus[in.Kind],
		Schema:    schema.String(),
		Emergency: in.Mode == entities.ModeEmergency,
	}

	var user bytes.Buffer
	if err := userTmpl.Execute(&user, data); err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	return &Spec{
		Mode:    in.Mode,
		Kind:    in.Kind,
		System:  systemMessage,
		User:    user.String(),
		Content: content,
		Schema:  schema.String(),
	}, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
