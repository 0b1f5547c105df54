package entities

import "strings"

// Mode selects the analytical lens of a prompt
type Mode string

const (
	ModeSynthrax  Mode = "synthrax"
	ModeVantix    Mode = "vantix"
	ModeLymnia    Mode = "lymnia"
	ModeEmergency Mode = "emergency"
)

// DefaultMode is used when the caller does not pick one
const DefaultMode = ModeSynthrax

// Older clients send the MAGI names
var modeAliases = map[string]Mode{
	"synthrax":   ModeSynthrax,
	"melchior":   ModeSynthrax,
	"analyst":    ModeSynthrax,
	"vantix":     ModeVantix,
	"balthasar":  ModeVantix,
	"strategist": ModeVantix,
	"lymnia":     ModeLymnia,
	"casper":     ModeLymnia,
	"human":      ModeLymnia,
	"emergency":  ModeEmergency,
}

// ParseMode resolves a wire value or alias. Empty input yields DefaultMode.
func ParseMode(raw string) (Mode, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultMode, nil
	}
	if m, ok := modeAliases[raw]; ok {
		return m, nil
	}
	return "", ErrInvalidMode
}

// IsValid reports whether m is one of the canonical modes
func (m Mode) IsValid() bool {
	switch m {
	case ModeSynthrax, ModeVantix, ModeLymnia, ModeEmergency:
		return true
	}
	return false
}

// ContentKind is the category of submitted text
type ContentKind string

const (
	ContentMeetings ContentKind = "meetings"
	ContentSocials  ContentKind = "socials"
	ContentNotes    ContentKind = "notes"
)

// DefaultContentKind is used when the caller does not pick one
const DefaultContentKind = ContentMeetings

// ParseContentKind resolves a wire value. Empty input yields DefaultContentKind.
func ParseContentKind(raw string) (ContentKind, error) {
	switch ContentKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultContentKind, nil
	case ContentMeetings:
		return ContentMeetings, nil
	case ContentSocials:
		return ContentSocials, nil
	case ContentNotes:
		return ContentNotes, nil
	}
	return "", ErrInvalidContentKind
}

// IsValid reports whether k is a known content kind
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentMeetings, ContentSocials, ContentNotes:
		return true
	}
	return false
}
