// apps/go-server/internal/history/store.go
//
// Finished-game history and per-user stats on top of the SQLite handle.
// Only finished games are written; in-progress sessions stay in memory.

package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
)

// Result is one finished game.
// Exactly one of UserID and AnonymousID is normally set.
type Result struct {
	GameID            string    `json:"id"`
	UserID            string    `json:"-"`
	AnonymousID       string    `json:"-"`
	Secret            string    `json:"secret"`
	Status            string    `json:"status"`
	WrongLetters      string    `json:"wrongLetters"`
	AttemptsRemaining int       `json:"attemptsRemaining"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
}

// FromSnapshot builds a Result for a finished session.
func FromSnapshot(s game.Snapshot) (Result, error) {
	if !s.Status.Finished() {
		return Result{}, errors.New("history: session not finished")
	}
	return Result{
		GameID:            s.ID,
		Secret:            s.Secret,
		Status:            string(s.Status),
		WrongLetters:      s.WrongLetters,
		AttemptsRemaining: s.AttemptsRemaining,
		StartedAt:         s.StartedAt,
		FinishedAt:        s.FinishedAt,
	}, nil
}

// Stats is a user's aggregate record.
type Stats struct {
	UserID      string `json:"id"`
	Username    string `json:"username,omitempty"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	Streak      int    `json:"streak"`
}

// Store reads and writes the games and users tables.
type Store struct{ db *sql.DB }

// NewStore wraps a migrated database opened with Open.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DB exposes the handle for the users table, which the HTTP layer owns.
func (s *Store) DB() *sql.DB { return s.db }

// Record inserts a finished game; a repeated game id is ignored.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, user_id, anonymous_id, secret, status, wrong_letters, attempts_remaining, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, nullable(r.UserID), nullable(r.AnonymousID), r.Secret, r.Status, r.WrongLetters,
		r.AttemptsRemaining, r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Recent lists a user's latest finished games, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, secret, status, wrong_letters, attempts_remaining, started_at, finished_at
        FROM games
        WHERE user_id=?
        ORDER BY finished_at DESC
        LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		var started, finished string
		if err := rows.Scan(&r.GameID, &r.Secret, &r.Status, &r.WrongLetters, &r.AttemptsRemaining, &started, &finished); err != nil {
			return nil, err
		}
		r.UserID = userID
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClaimAnonymous transfers a guest's games to a user account.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BumpStats increments games played; updates wins and streak based on the result.
func (s *Store) BumpStats(ctx context.Context, userID string, won bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var st Stats
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&st.GamesPlayed, &st.Wins, &st.Streak); err != nil {
		return err
	}
	st.GamesPlayed++
	if won {
		st.Wins++
		st.Streak++
	} else {
		st.Streak = 0
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`,
		st.GamesPlayed, st.Wins, st.Streak, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// UserStats loads the aggregate record of one user.
func (s *Store) UserStats(ctx context.Context, userID string) (Stats, error) {
	st := Stats{UserID: userID}
	err := s.db.QueryRowContext(ctx,
		`SELECT username, games_played, wins, streak FROM users WHERE id=?`, userID,
	).Scan(&st.Username, &st.GamesPlayed, &st.Wins, &st.Streak)
	return st, err
}

// Leaderboard ranks users by wins, then current streak, then fewest games.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]Stats, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, username, games_played, wins, streak
        FROM users
        WHERE games_played > 0
        ORDER BY wins DESC, streak DESC, games_played ASC, username ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Stats, 0, limit)
	for rows.Next() {
		var st Stats
		if err := rows.Scan(&st.UserID, &st.Username, &st.GamesPlayed, &st.Wins, &st.Streak); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
