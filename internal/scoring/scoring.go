// Package scoring computes the points awarded for a single answered
// question. It is a pure function of its inputs: the caller owns the streak
// state and passes the pre-answer value in.
package scoring

import "math"

// Type adjusts the speed bonus for question formats that inherently take
// longer to answer.
type Type string

const (
	TypeDefault        Type = "default"
	TypeMultipleChoice Type = "multipleChoice"
	TypeTranslation    Type = "translation"
	TypeSpelling       Type = "spelling"
	TypeMatching       Type = "matching"
)

const basePoints = 10

// Result carries the full point breakdown for one answer.
type Result struct {
	BasePoints           int     `json:"basePoints"`
	SpeedBonus           int     `json:"speedBonus"`
	StreakBonus          int     `json:"streakBonus"`
	DifficultyMultiplier float64 `json:"difficultyMultiplier"`
	TotalPoints          int     `json:"totalPoints"`
}

// Score computes points for one answer.
//
// An incorrect answer always scores zero. For correct answers: 10 base
// points, a stepped speed bonus capped at 5 (scaled down for matching and
// spelling questions), +2 streak bonus per three consecutive correct
// answers counting this one, and a difficulty multiplier of 1.0/1.5/2.0
// applied to the sum.
//
// secondsSpent at or below zero counts as the fastest bucket; difficulty
// outside 1..3 clamps to the nearest valid value; streakBefore below zero
// counts as zero. attemptNumber is part of the attempt record but carries
// no penalty in this model.
func Score(correct bool, secondsSpent float64, attemptNumber, difficulty, streakBefore int, questionType Type) Result {
	if !correct {
		return Result{DifficultyMultiplier: 1}
	}

	if secondsSpent < 0 {
		secondsSpent = 0
	}
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 3 {
		difficulty = 3
	}
	if streakBefore < 0 {
		streakBefore = 0
	}

	speedBonus := speedBonusFor(secondsSpent)
	switch questionType {
	case TypeMatching:
		speedBonus = speedBonus / 2 // matching takes longer
	case TypeSpelling:
		speedBonus = int(float64(speedBonus) * 0.7) // includes memorization time
	}

	newStreak := streakBefore + 1
	streakBonus := newStreak / 3 * 2

	difficultyMultiplier := 1 + float64(difficulty-1)*0.5

	total := int(math.Round(float64(basePoints+speedBonus+streakBonus) * difficultyMultiplier))

	return Result{
		BasePoints:           basePoints,
		SpeedBonus:           speedBonus,
		StreakBonus:          streakBonus,
		DifficultyMultiplier: difficultyMultiplier,
		TotalPoints:          total,
	}
}

// speedBonusFor maps elapsed seconds to the 0..5 bonus steps.
func speedBonusFor(seconds float64) int {
	switch {
	case seconds < 5:
		return 5
	case seconds < 10:
		return 4
	case seconds < 15:
		return 3
	case seconds < 20:
		return 2
	case seconds < 30:
		return 1
	default:
		return 0
	}
}
