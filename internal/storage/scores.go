package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one finished arcade game.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"gameId"`
	Score     int       `json:"score"`
	Player    string    `json:"player,omitempty"` // external id, empty for anonymous play
	CreatedAt time.Time `json:"createdAt"`
}

// GameStats aggregates all scores of one game.
type GameStats struct {
	GameID     string    `json:"gameId"`
	GamesCount int       `json:"gamesCount"`
	HighScore  int       `json:"highScore"`
	AvgScore   float64   `json:"avgScore"`
	TotalScore int64     `json:"totalScore"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// SaveScore records a finished game. userID may be empty.
func (s *Store) SaveScore(ctx context.Context, gameID string, score int, userID string) (int64, error) {
	var uid sql.NullString
	if userID != "" {
		uid = sql.NullString{String: userID, Valid: true}
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (game_id, score, user_id, created_at) VALUES (?, ?, ?, ?)",
		gameID, score, uid, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return id, nil
}

// TopScores returns the best limit scores of a game, highest first.
func (s *Store) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.game_id, s.score, COALESCE(u.external_id, ''), s.created_at
		 FROM scores s LEFT JOIN users u ON u.id = s.user_id
		 WHERE s.game_id = ?
		 ORDER BY s.score DESC, s.id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: top scores: %w", err)
	}
	defer rows.Close()

	entries := []ScoreEntry{}
	for rows.Next() {
		var (
			e         ScoreEntry
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: top scores: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: top scores: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a game, or 0.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ?", gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes every score of a game.
func (s *Store) ClearScores(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}

// GameStats aggregates the scores of one game. A game never played yields
// zero counts.
func (s *Store) GameStats(ctx context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var last any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &last)
	if err != nil {
		return GameStats{}, fmt.Errorf("storage: game stats: %w", err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

// AllGameStats aggregates every game that has a score, keyed by game id.
func (s *Store) AllGameStats(ctx context.Context) (map[string]GameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: all game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]GameStats)
	for rows.Next() {
		var (
			gs   GameStats
			last any
		)
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &last); err != nil {
			return nil, fmt.Errorf("storage: all game stats: %w", err)
		}
		gs.LastPlayed = parseTime(last)
		stats[gs.GameID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: all game stats: %w", err)
	}
	return stats, nil
}
