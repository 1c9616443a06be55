package achievements_test

import (
	"slices"
	"testing"
	"time"

	"github.com/rocklingo/backend/internal/domain/achievements"
	"github.com/rocklingo/backend/internal/store"
)

func day(n int) int64 {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, n).UnixMilli()
}

func statusByID(t *testing.T, statuses []achievements.Status, id string) achievements.Status {
	t.Helper()
	for _, st := range statuses {
		if st.ID == id {
			return st
		}
	}
	t.Fatalf("achievement %s not found", id)
	return achievements.Status{}
}

func TestEvaluate_EmptyHistoryLocksEverything(t *testing.T) {
	statuses := achievements.Evaluate(nil, nil)

	if len(statuses) != 8 {
		t.Fatalf("expected 8 achievements, got %d", len(statuses))
	}
	for _, st := range statuses {
		if st.Unlocked {
			t.Errorf("%s unlocked with no history", st.ID)
		}
	}
}

func TestEvaluate_FirstSession(t *testing.T) {
	sessions := []store.PersistedSession{
		{ID: "s1", Date: day(0), Duration: 300, Score: 50, QuestionsAnswered: 10, CorrectAnswers: 6},
	}

	st := statusByID(t, achievements.Evaluate(sessions, nil), "first_session")
	if !st.Unlocked {
		t.Error("expected first_session unlocked")
	}
	if st.Icon != "🌟" {
		t.Errorf("expected celebratory icon, got %q", st.Icon)
	}
}

func TestEvaluate_PerfectSession(t *testing.T) {
	imperfect := []store.PersistedSession{
		{ID: "s1", Date: day(0), QuestionsAnswered: 10, CorrectAnswers: 9},
		{ID: "s2", Date: day(0), QuestionsAnswered: 0, CorrectAnswers: 0}, // empty session does not count
	}
	if st := statusByID(t, achievements.Evaluate(imperfect, nil), "perfect_session"); st.Unlocked {
		t.Error("perfect_session unlocked without a perfect session")
	}

	perfect := append(imperfect, store.PersistedSession{ID: "s3", Date: day(1), QuestionsAnswered: 5, CorrectAnswers: 5})
	if st := statusByID(t, achievements.Evaluate(perfect, nil), "perfect_session"); !st.Unlocked {
		t.Error("expected perfect_session unlocked")
	}
}

func TestEvaluate_HighScoreProgress(t *testing.T) {
	sessions := []store.PersistedSession{
		{ID: "s1", Date: day(0), Score: 120},
		{ID: "s2", Date: day(1), Score: 80},
	}

	st := statusByID(t, achievements.Evaluate(sessions, nil), "high_score")
	if st.Unlocked {
		t.Error("high_score unlocked below 200")
	}
	if st.Progress == nil || st.Progress.Current != 120 || st.Progress.Target != 200 {
		t.Errorf("expected progress 120/200, got %+v", st.Progress)
	}

	sessions = append(sessions, store.PersistedSession{ID: "s3", Date: day(2), Score: 200})
	st = statusByID(t, achievements.Evaluate(sessions, nil), "high_score")
	if !st.Unlocked {
		t.Error("expected high_score unlocked at exactly 200")
	}
	if st.Progress != nil {
		t.Error("unlocked achievements carry no progress")
	}
}

func TestEvaluate_SevenDayStreak(t *testing.T) {
	var sessions []store.PersistedSession
	for i := range 6 {
		sessions = append(sessions, store.PersistedSession{ID: "s", Date: day(i)})
	}
	// A second session on an already-counted day must not extend the run.
	sessions = append(sessions, store.PersistedSession{ID: "dup", Date: day(3)})

	st := statusByID(t, achievements.Evaluate(sessions, nil), "streak_7")
	if st.Unlocked {
		t.Error("streak_7 unlocked after 6 days")
	}
	if st.Progress == nil || st.Progress.Current != 6 {
		t.Errorf("expected trailing streak 6, got %+v", st.Progress)
	}

	sessions = append(sessions, store.PersistedSession{ID: "s7", Date: day(6)})
	if st := statusByID(t, achievements.Evaluate(sessions, nil), "streak_7"); !st.Unlocked {
		t.Error("expected streak_7 unlocked after 7 consecutive days")
	}
}

func TestEvaluate_GapBreaksStreak(t *testing.T) {
	sessions := []store.PersistedSession{
		{ID: "s1", Date: day(0)},
		{ID: "s2", Date: day(1)},
		{ID: "s3", Date: day(3)}, // day 2 skipped
		{ID: "s4", Date: day(4)},
	}

	st := statusByID(t, achievements.Evaluate(sessions, nil), "streak_7")
	if st.Progress == nil || st.Progress.Current != 2 {
		t.Errorf("expected trailing streak 2 after the gap, got %+v", st.Progress)
	}
}

func TestEvaluate_WordsMastered(t *testing.T) {
	progress := map[string]store.QuestionProgress{}
	for i := range 10 {
		progress[string(rune('a'+i))] = store.QuestionProgress{Correct: 3, Total: 3}
	}
	// Not learned: below accuracy and below answer count.
	progress["x"] = store.QuestionProgress{Correct: 1, Total: 3}
	progress["y"] = store.QuestionProgress{Correct: 2, Total: 2}

	statuses := achievements.Evaluate(nil, progress)
	if st := statusByID(t, statuses, "words_mastered_10"); !st.Unlocked {
		t.Error("expected words_mastered_10 unlocked with 10 learned words")
	}
	st := statusByID(t, statuses, "words_mastered_50")
	if st.Unlocked {
		t.Error("words_mastered_50 unlocked with only 10 words")
	}
	if st.Progress == nil || st.Progress.Current != 10 || st.Progress.Target != 50 {
		t.Errorf("expected progress 10/50, got %+v", st.Progress)
	}
}

func TestEvaluate_SpeedDemon(t *testing.T) {
	slow := []store.PersistedSession{
		{ID: "s1", Date: day(0), Duration: 300, QuestionsAnswered: 10},
	}
	if st := statusByID(t, achievements.Evaluate(slow, nil), "speed_demon"); st.Unlocked {
		t.Error("speed_demon unlocked at 30s per question")
	}

	fast := append(slow, store.PersistedSession{ID: "s2", Date: day(1), Duration: 29, QuestionsAnswered: 10})
	if st := statusByID(t, achievements.Evaluate(fast, nil), "speed_demon"); !st.Unlocked {
		t.Error("expected speed_demon unlocked below 3s per question")
	}
}

func TestEvaluate_Marathon(t *testing.T) {
	var sessions []store.PersistedSession
	for i := range 24 {
		sessions = append(sessions, store.PersistedSession{ID: "s", Date: day(i % 5)})
	}

	st := statusByID(t, achievements.Evaluate(sessions, nil), "marathon")
	if st.Unlocked {
		t.Error("marathon unlocked at 24 sessions")
	}
	if st.Progress == nil || st.Progress.Current != 24 || st.Progress.Target != 25 {
		t.Errorf("expected progress 24/25, got %+v", st.Progress)
	}

	sessions = append(sessions, store.PersistedSession{ID: "s25", Date: day(0)})
	if st := statusByID(t, achievements.Evaluate(sessions, nil), "marathon"); !st.Unlocked {
		t.Error("expected marathon unlocked at 25 sessions")
	}
}

func TestUnlocked_ReturnsOnlyUnlockedIDs(t *testing.T) {
	sessions := []store.PersistedSession{
		{ID: "s1", Date: day(0), Duration: 20, Score: 250, QuestionsAnswered: 10, CorrectAnswers: 10},
	}

	ids := achievements.Unlocked(sessions, nil)
	want := []string{"first_session", "perfect_session", "high_score", "speed_demon"}
	for _, id := range want {
		if !slices.Contains(ids, id) {
			t.Errorf("expected %s in unlocked set %v", id, ids)
		}
	}
	if slices.Contains(ids, "marathon") {
		t.Errorf("marathon must stay locked: %v", ids)
	}
}
