package bills

// LatestStatus returns the status code and acted-on date of the most recent
// action carrying a status.
func LatestStatus(actions []Action) (status, statusAt string) {
	for _, action := range actions {
		if action.Status != "" {
			status = action.Status
			statusAt = action.ActedAt
		}
	}
	return status, statusAt
}

// HistoryFromActions derives the summary history entries from the ordered
// action list.
func HistoryFromActions(actions []Action) map[string]any {
	history := map[string]any{
		"active":             false,
		"awaiting_signature": false,
		"enacted":            false,
		"vetoed":             false,
	}
	for _, action := range actions {
		switch action.Type {
		case ActionEnacted:
			history["enacted"] = true
			history["enacted_at"] = action.ActedAt
		case ActionVote:
			history["active"] = true
			chamber := chamberName(action.Where)
			if chamber == "" || action.Result == "" {
				continue
			}
			history[chamber+"_passage_result"] = action.Result
			history[chamber+"_passage_result_at"] = action.ActedAt
		}
	}
	return history
}

// SlipLawFrom returns the slip-law citation of the enacted action, or nil
// when the bill was never enacted.
func SlipLawFrom(actions []Action) *SlipLaw {
	for _, action := range actions {
		if action.Type == ActionEnacted {
			return &SlipLaw{
				Congress: action.Congress,
				LawType:  action.Law,
				Number:   action.Number,
			}
		}
	}
	return nil
}

// CurrentTitleFor returns the most recently applied title of the given type,
// or nil when no such title exists.
func CurrentTitleFor(titles []Title, titleType string) *string {
	var current *string
	for i := range titles {
		if titles[i].Type == titleType && titles[i].Title != "" {
			current = &titles[i].Title
		}
	}
	return current
}

func chamberName(where string) string {
	switch where {
	case "h":
		return "house"
	case "s":
		return "senate"
	default:
		return ""
	}
}
