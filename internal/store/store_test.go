package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rocklingo/backend/internal/domain/questionbank"
	"github.com/rocklingo/backend/internal/store"
)

// kvBackends runs a subtest against both KV implementations so they cannot
// drift apart.
func kvBackends(t *testing.T, fn func(t *testing.T, kv store.KV)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemory())
	})

	t.Run("sqlite", func(t *testing.T) {
		kv, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("NewSQLite: %v", err)
		}
		t.Cleanup(func() { kv.Close() })
		fn(t, kv)
	})
}

func TestKV_RoundTrip(t *testing.T) {
	kvBackends(t, func(t *testing.T, kv store.KV) {
		type doc struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		if err := kv.Set("k", doc{Name: "a", Count: 1}); err != nil {
			t.Fatalf("Set: %v", err)
		}

		var got doc
		if err := kv.Get("k", &got); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != "a" || got.Count != 1 {
			t.Errorf("round trip mismatch: %+v", got)
		}

		// Overwrite in place.
		if err := kv.Set("k", doc{Name: "b", Count: 2}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := kv.Get("k", &got); err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != "b" || got.Count != 2 {
			t.Errorf("overwrite mismatch: %+v", got)
		}
	})
}

func TestKV_MissingKey(t *testing.T) {
	kvBackends(t, func(t *testing.T, kv store.KV) {
		var v string
		if err := kv.Get("missing", &v); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestKV_RemoveAndClear(t *testing.T) {
	kvBackends(t, func(t *testing.T, kv store.KV) {
		kv.Set("a", 1)
		kv.Set("b", 2)

		if err := kv.Remove("a"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		var v int
		if err := kv.Get("a", &v); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected removed key to be gone, got %v", err)
		}
		if err := kv.Get("b", &v); err != nil {
			t.Errorf("unrelated key vanished: %v", err)
		}

		// Removing an absent key is not an error.
		if err := kv.Remove("a"); err != nil {
			t.Errorf("second Remove: %v", err)
		}

		if err := kv.Clear(); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		if err := kv.Get("b", &v); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected cleared key to be gone, got %v", err)
		}
	})
}

func TestStore_UserLifecycle(t *testing.T) {
	st := store.New(store.NewMemory())

	if _, err := st.User(); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound before registration, got %v", err)
	}

	user := &store.User{Name: "Rosalie", CreatedAt: 1700000000000}
	if err := st.SetUser(user); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	got, err := st.User()
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if got.Name != "Rosalie" || got.CreatedAt != 1700000000000 {
		t.Errorf("user mismatch: %+v", got)
	}
}

func TestStore_SessionsAppendAndReplace(t *testing.T) {
	st := store.New(store.NewMemory())

	sessions, err := st.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty list, got %d", len(sessions))
	}

	st.AppendSession(store.PersistedSession{ID: "s1", Date: 1})
	st.AppendSession(store.PersistedSession{ID: "s2", Date: 2})

	sessions, _ = st.Sessions()
	if len(sessions) != 2 || sessions[0].ID != "s1" || sessions[1].ID != "s2" {
		t.Errorf("append order broken: %+v", sessions)
	}

	if err := st.ReplaceSessions([]store.PersistedSession{{ID: "s9", Date: 9}}); err != nil {
		t.Fatalf("ReplaceSessions: %v", err)
	}
	sessions, _ = st.Sessions()
	if len(sessions) != 1 || sessions[0].ID != "s9" {
		t.Errorf("replace failed: %+v", sessions)
	}
}

func TestStore_SettingsDefault(t *testing.T) {
	st := store.New(store.NewMemory())

	settings, err := st.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings != store.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", settings)
	}

	settings.SessionDuration = 30
	settings.Difficulty = "hard"
	if err := st.SetSettings(settings); err != nil {
		t.Fatalf("SetSettings: %v", err)
	}

	got, _ := st.Settings()
	if got.SessionDuration != 30 || got.Difficulty != "hard" {
		t.Errorf("settings not persisted: %+v", got)
	}
}

func TestStore_CustomBank(t *testing.T) {
	st := store.New(store.NewMemory())

	if _, err := st.CustomBank(); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	bank := &questionbank.QuestionBank{
		Version: questionbank.FormatVersion,
		Categories: []questionbank.Category{
			{ID: "grammar", Name: "Grammatica", Questions: []questionbank.Question{
				{ID: "q1", French: "bonjour", Dutch: "hallo", Category: "grammar", Difficulty: 1},
			}},
		},
	}
	if err := st.SetCustomBank(bank); err != nil {
		t.Fatalf("SetCustomBank: %v", err)
	}

	got, err := st.CustomBank()
	if err != nil {
		t.Fatalf("CustomBank: %v", err)
	}
	if got.TotalQuestions() != 1 {
		t.Errorf("expected 1 question, got %d", got.TotalQuestions())
	}
}

func TestStore_ProgressAndAchievements(t *testing.T) {
	st := store.New(store.NewMemory())

	progress, err := st.Progress()
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("expected empty progress map, got %v", progress)
	}

	progress["q1"] = store.QuestionProgress{Correct: 1, Total: 2}
	if err := st.SetProgress(progress); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	got, _ := st.Progress()
	if got["q1"].Total != 2 {
		t.Errorf("progress not persisted: %+v", got)
	}

	unlocked, err := st.Achievements()
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	if unlocked != nil {
		t.Errorf("expected nil achievements, got %v", unlocked)
	}
	if err := st.SetAchievements([]string{"first_session"}); err != nil {
		t.Fatalf("SetAchievements: %v", err)
	}
	unlocked, _ = st.Achievements()
	if len(unlocked) != 1 || unlocked[0] != "first_session" {
		t.Errorf("achievements not persisted: %v", unlocked)
	}
}

func TestStore_Clear(t *testing.T) {
	st := store.New(store.NewMemory())

	st.SetUser(&store.User{Name: "Rosalie"})
	st.AppendSession(store.PersistedSession{ID: "s1", Date: 1})

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := st.User(); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected user wiped, got %v", err)
	}
	sessions, _ := st.Sessions()
	if len(sessions) != 0 {
		t.Errorf("expected sessions wiped, got %d", len(sessions))
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	kv, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	kv, err = store.NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	var v string
	if err := kv.Get("k", &v); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if v != "v" {
		t.Errorf("expected v, got %q", v)
	}
}
