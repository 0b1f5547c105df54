package analysis

// AnalyzeRequest is the body of POST /api/analyze.
// Older clients send the mode as shinraiMode; mode wins when both are set.
type AnalyzeRequest struct {
	Transcript  string `json:"transcript"`
	Topic       string `json:"topic" validate:"max=500"`
	Attendees   string `json:"attendees" validate:"max=2000"`
	KnownInfo   string `json:"knownInfo"`
	Mode        string `json:"mode"`
	ShinraiMode string `json:"shinraiMode"`
	ContentMode string `json:"contentMode"`
}

// ResolvedMode returns the mode the client asked for
func (r *AnalyzeRequest) ResolvedMode() string {
	if r.Mode != "" {
		return r.Mode
	}
	return r.ShinraiMode
}
