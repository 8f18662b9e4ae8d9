package domain

import "time"

const (
	MinPollOptions = 2
	MaxPollOptions = 10
)

type Poll struct {
	ID       uint     `json:"id"`
	EventID  uint     `json:"eventId"`
	UserID   uint     `json:"userId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	IsActive bool     `json:"isActive"`
	// Votes maps voter id to the chosen option.
	Votes     map[uint]string `json:"votes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (p Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}

	return false
}

// CheckVote validates a vote without persisting it.
func (p Poll) CheckVote(userID uint, option string) error {
	if !p.IsActive {
		return ErrPollInactive
	}
	if !p.HasOption(option) {
		return ErrInvalidOption
	}
	if _, ok := p.Votes[userID]; ok {
		return ErrAlreadyVoted
	}

	return nil
}

type OptionResult struct {
	Option string `json:"option"`
	Votes  int    `json:"votes"`
}

type PollResults struct {
	PollID     uint           `json:"pollId"`
	Question   string         `json:"question"`
	IsActive   bool           `json:"isActive"`
	Results    []OptionResult `json:"results"`
	TotalVotes int            `json:"totalVotes"`
}

// Results tallies votes in option order. Votes for options that were later
// removed are not counted.
func (p Poll) Results() PollResults {
	counts := make(map[string]int, len(p.Options))
	for _, option := range p.Votes {
		counts[option]++
	}

	res := PollResults{
		PollID:   p.ID,
		Question: p.Question,
		IsActive: p.IsActive,
		Results:  make([]OptionResult, 0, len(p.Options)),
	}
	for _, o := range p.Options {
		res.Results = append(res.Results, OptionResult{Option: o, Votes: counts[o]})
		res.TotalVotes += counts[o]
	}

	return res
}

type PollUpdate struct {
	Question *string
	Options  []string
	IsActive *bool
}
