// Package achievements evaluates the fixed badge set over stored sessions
// and question progress. Evaluation is pure; unlock persistence is the
// caller's concern.
package achievements

import (
	"slices"
	"time"

	"github.com/rocklingo/backend/internal/store"
)

// Progress reports how close a locked achievement is to its target.
type Progress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// Status is the evaluated state of one achievement.
type Status struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Unlocked    bool      `json:"unlocked"`
	Progress    *Progress `json:"progress,omitempty"`
}

type achievement struct {
	id           string
	name         string
	description  string
	icon         string
	unlockedIcon string
	condition    func(in input) bool
	progress     func(in input) *Progress
}

type input struct {
	sessions []store.PersistedSession
	progress map[string]store.QuestionProgress
}

var all = []achievement{
	{
		id:           "first_session",
		name:         "Eerste Stappen",
		description:  "Voltooi je eerste oefensessie",
		icon:         "⭐",
		unlockedIcon: "🌟",
		condition:    func(in input) bool { return len(in.sessions) >= 1 },
	},
	{
		id:           "perfect_session",
		name:         "Perfect!",
		description:  "Behaal 100% nauwkeurigheid in een sessie",
		icon:         "🎯",
		unlockedIcon: "🏆",
		condition: func(in input) bool {
			for _, s := range in.sessions {
				if s.QuestionsAnswered > 0 && s.CorrectAnswers == s.QuestionsAnswered {
					return true
				}
			}
			return false
		},
	},
	{
		id:           "high_score",
		name:         "Hoge Score",
		description:  "Behaal 200+ punten in één sessie",
		icon:         "🏅",
		unlockedIcon: "👑",
		condition: func(in input) bool {
			for _, s := range in.sessions {
				if s.Score >= 200 {
					return true
				}
			}
			return false
		},
		progress: func(in input) *Progress {
			best := 0
			for _, s := range in.sessions {
				if s.Score > best {
					best = s.Score
				}
			}
			return &Progress{Current: best, Target: 200}
		},
	},
	{
		id:           "streak_7",
		name:         "Volhardend",
		description:  "Oefen 7 dagen achter elkaar",
		icon:         "🔥",
		unlockedIcon: "🚀",
		condition: func(in input) bool {
			return longestDayStreak(in.sessions) >= 7
		},
		progress: func(in input) *Progress {
			cur := trailingDayStreak(in.sessions)
			if cur > 7 {
				cur = 7
			}
			return &Progress{Current: cur, Target: 7}
		},
	},
	{
		id:           "words_mastered_10",
		name:         "Woordenkenner",
		description:  "Leer 10 woorden (70%+ nauwkeurigheid)",
		icon:         "📚",
		unlockedIcon: "🧠",
		condition:    func(in input) bool { return learnedWords(in.progress) >= 10 },
		progress: func(in input) *Progress {
			return &Progress{Current: learnedWords(in.progress), Target: 10}
		},
	},
	{
		id:           "words_mastered_50",
		name:         "Woordenmeester",
		description:  "Leer 50 woorden (70%+ nauwkeurigheid)",
		icon:         "🎓",
		unlockedIcon: "🌟",
		condition:    func(in input) bool { return learnedWords(in.progress) >= 50 },
		progress: func(in input) *Progress {
			return &Progress{Current: learnedWords(in.progress), Target: 50}
		},
	},
	{
		id:           "speed_demon",
		name:         "Snelheidsduivel",
		description:  "Gemiddeld <3 seconden per vraag in een sessie",
		icon:         "⚡",
		unlockedIcon: "💨",
		condition: func(in input) bool {
			for _, s := range in.sessions {
				if s.QuestionsAnswered > 0 && float64(s.Duration)/float64(s.QuestionsAnswered) < 3 {
					return true
				}
			}
			return false
		},
	},
	{
		id:           "marathon",
		name:         "Marathon",
		description:  "Voltooi 25 oefensessies",
		icon:         "🏃",
		unlockedIcon: "🏁",
		condition:    func(in input) bool { return len(in.sessions) >= 25 },
		progress: func(in input) *Progress {
			return &Progress{Current: len(in.sessions), Target: 25}
		},
	},
}

// Evaluate runs every achievement against the given history. Locked
// achievements carry their original icon, unlocked ones the celebratory one.
func Evaluate(sessions []store.PersistedSession, progress map[string]store.QuestionProgress) []Status {
	in := input{sessions: sessions, progress: progress}

	statuses := make([]Status, 0, len(all))
	for _, a := range all {
		unlocked := a.condition(in)
		icon := a.icon
		if unlocked {
			icon = a.unlockedIcon
		}
		st := Status{
			ID:          a.id,
			Name:        a.name,
			Description: a.description,
			Icon:        icon,
			Unlocked:    unlocked,
		}
		if !unlocked && a.progress != nil {
			st.Progress = a.progress(in)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Unlocked returns just the ids of unlocked achievements, for persistence.
func Unlocked(sessions []store.PersistedSession, progress map[string]store.QuestionProgress) []string {
	var ids []string
	for _, st := range Evaluate(sessions, progress) {
		if st.Unlocked {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

func learnedWords(progress map[string]store.QuestionProgress) int {
	n := 0
	for _, qp := range progress {
		if qp.Total >= 3 && float64(qp.Correct)/float64(qp.Total) >= 0.7 {
			n++
		}
	}
	return n
}

// longestDayStreak finds the longest run of sessions on consecutive calendar
// days. Multiple sessions on the same day neither extend nor break a run.
func longestDayStreak(sessions []store.PersistedSession) int {
	days := sessionDays(sessions)
	if len(days) == 0 {
		return 0
	}

	longest, streak := 1, 1
	for i := 1; i < len(days); i++ {
		switch days[i] - days[i-1] {
		case 1:
			streak++
			if streak > longest {
				longest = streak
			}
		case 0:
			// same day
		default:
			streak = 1
		}
	}
	return longest
}

// trailingDayStreak counts consecutive practice days ending at the most
// recent session.
func trailingDayStreak(sessions []store.PersistedSession) int {
	days := sessionDays(sessions)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		diff := days[i+1] - days[i]
		if diff == 0 {
			continue
		}
		if diff != 1 {
			break
		}
		streak++
	}
	return streak
}

// sessionDays maps session start times to sorted UTC day numbers.
func sessionDays(sessions []store.PersistedSession) []int64 {
	days := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		days = append(days, time.UnixMilli(s.Date).UTC().Unix()/86400)
	}
	slices.Sort(days)
	return days
}
