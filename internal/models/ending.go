package models

// EndingType classifies an ending scene. It drives presentation only.
type EndingType string

const (
	EndingVictory EndingType = "victory"
	EndingDefeat  EndingType = "defeat"
	EndingNeutral EndingType = "neutral"
)

func (t EndingType) IsValid() bool {
	switch t {
	case EndingVictory, EndingDefeat, EndingNeutral:
		return true
	}
	return false
}

// EndingPresentation is the display metadata shown on the ending screen.
type EndingPresentation struct {
	Type    EndingType `json:"type"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Icon    string     `json:"icon"`
	Tone    string     `json:"tone"`
}

var endingPresentations = map[EndingType]EndingPresentation{
	EndingVictory: {
		Type:    EndingVictory,
		Title:   "Victory!",
		Message: "Congratulations, you triumphed!",
		Icon:    "🏆",
		Tone:    "gold",
	},
	EndingDefeat: {
		Type:    EndingDefeat,
		Title:   "Defeat...",
		Message: "Your adventure ends here. Try again!",
		Icon:    "💀",
		Tone:    "red",
	},
	EndingNeutral: {
		Type:    EndingNeutral,
		Title:   "The End",
		Message: "Your adventure is over.",
		Icon:    "📖",
		Tone:    "gray",
	},
}

// ClassifyEnding maps an ending type to its presentation. A nil or unknown
// type is presented as neutral.
func ClassifyEnding(t *EndingType) EndingPresentation {
	if t != nil {
		if p, ok := endingPresentations[*t]; ok {
			return p
		}
	}
	return endingPresentations[EndingNeutral]
}
