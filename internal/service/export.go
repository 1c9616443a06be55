package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rocklingo/backend/internal/domain/achievements"
	"github.com/rocklingo/backend/internal/store"
)

const appVersion = "1.0.0"

// UserData is the stored state bundled into an export file.
type UserData struct {
	User             *store.User                       `json:"user"`
	Sessions         []store.PersistedSession          `json:"sessions"`
	Settings         store.Settings                    `json:"settings"`
	QuestionProgress map[string]store.QuestionProgress `json:"questionProgress"`
	Achievements     []string                          `json:"achievements"`
}

type Statistics struct {
	TotalSessions  int `json:"totalSessions"`
	TotalPoints    int `json:"totalPoints"`
	TotalTimeSpent int `json:"totalTimeSpent"` // minutes
	WordsLearned   int `json:"wordsLearned"`
	AverageScore   int `json:"averageScore"`
	BestScore      int `json:"bestScore"`
}

// ExportData is the JSON export/import document.
type ExportData struct {
	ExportDate string     `json:"exportDate"`
	AppVersion string     `json:"appVersion"`
	UserData   *UserData  `json:"userData"`
	Statistics Statistics `json:"statistics"`
}

// ImportResult reports structural validation findings. Errors abort the
// import; warnings do not.
type ImportResult struct {
	Success          bool     `json:"success"`
	Errors           []string `json:"errors"`
	Warnings         []string `json:"warnings"`
	SessionsImported int      `json:"sessionsImported"`
}

// ExportService produces and consumes backup files of the full stored state.
type ExportService struct {
	store    *store.Store
	sessions *SessionManager
	now      func() time.Time
}

func NewExportService(st *store.Store, sessions *SessionManager) *ExportService {
	return &ExportService{store: st, sessions: sessions, now: time.Now}
}

func (e *ExportService) buildExport() (*ExportData, error) {
	user, err := e.store.User()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	sessions, err := e.store.Sessions()
	if err != nil {
		return nil, err
	}
	settings, err := e.store.Settings()
	if err != nil {
		return nil, err
	}
	progress, err := e.store.Progress()
	if err != nil {
		return nil, err
	}
	unlocked, err := e.store.Achievements()
	if err != nil {
		return nil, err
	}
	stats, err := e.sessions.Stats()
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	if user != nil {
		totalPoints = user.TotalPoints
	}

	return &ExportData{
		ExportDate: e.now().UTC().Format(time.RFC3339),
		AppVersion: appVersion,
		UserData: &UserData{
			User:             user,
			Sessions:         sessions,
			Settings:         settings,
			QuestionProgress: progress,
			Achievements:     unlocked,
		},
		Statistics: Statistics{
			TotalSessions:  stats.TotalSessions,
			TotalPoints:    totalPoints,
			TotalTimeSpent: stats.TotalTimeSpentMinutes,
			WordsLearned:   CountLearned(progress),
			AverageScore:   stats.AverageScore,
			BestScore:      stats.BestScore,
		},
	}, nil
}

// ExportJSON renders the full backup document.
func (e *ExportService) ExportJSON() ([]byte, error) {
	data, err := e.buildExport()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportCSV renders only the session rows.
func (e *ExportService) ExportCSV() ([]byte, error) {
	sessions, err := e.store.Sessions()
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"SessionId", "Date", "DurationSeconds", "Score", "QuestionsAnswered", "CorrectAnswers", "AccuracyPercent"})
	for _, s := range sessions {
		accuracy := 0
		if s.QuestionsAnswered > 0 {
			accuracy = int(math.Round(float64(s.CorrectAnswers) / float64(s.QuestionsAnswered) * 100))
		}
		rec := []string{
			s.ID,
			time.UnixMilli(s.Date).UTC().Format("2006-01-02"),
			strconv.Itoa(s.Duration),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.QuestionsAnswered),
			strconv.Itoa(s.CorrectAnswers),
			strconv.Itoa(accuracy),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Import validates a backup document and, when it carries no errors,
// replaces the stored state with its contents.
func (e *ExportService) Import(raw []byte) (ImportResult, error) {
	result := ImportResult{Errors: []string{}, Warnings: []string{}}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		result.Errors = append(result.Errors, "not a valid export file: "+err.Error())
		return result, nil
	}

	if data.UserData == nil {
		result.Errors = append(result.Errors, "export file is missing user data")
	}
	if data.ExportDate == "" {
		result.Warnings = append(result.Warnings, "export file has no export date")
	}
	if data.AppVersion == "" {
		result.Warnings = append(result.Warnings, "export file has no app version")
	} else if data.AppVersion != appVersion {
		result.Warnings = append(result.Warnings, fmt.Sprintf("export is from a different app version (%s)", data.AppVersion))
	}

	if data.UserData != nil {
		if len(data.UserData.Sessions) == 0 {
			result.Warnings = append(result.Warnings, "no sessions found in export")
		}
		incomplete := 0
		for _, s := range data.UserData.Sessions {
			if s.ID == "" || s.Date == 0 {
				incomplete++
			}
		}
		if incomplete > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%d sessions have incomplete data", incomplete))
		}
	}

	if len(result.Errors) > 0 {
		return result, nil
	}

	// Apply: imported state replaces the stored state wholesale.
	if data.UserData.User != nil {
		if err := e.store.SetUser(data.UserData.User); err != nil {
			return result, err
		}
	}
	if err := e.store.ReplaceSessions(data.UserData.Sessions); err != nil {
		return result, err
	}
	if err := e.store.SetSettings(data.UserData.Settings); err != nil {
		return result, err
	}
	if data.UserData.QuestionProgress != nil {
		if err := e.store.SetProgress(data.UserData.QuestionProgress); err != nil {
			return result, err
		}
	}
	unlocked := data.UserData.Achievements
	if unlocked == nil {
		unlocked = achievements.Unlocked(data.UserData.Sessions, data.UserData.QuestionProgress)
	}
	if err := e.store.SetAchievements(unlocked); err != nil {
		return result, err
	}

	result.Success = true
	result.SessionsImported = len(data.UserData.Sessions)
	return result, nil
}
