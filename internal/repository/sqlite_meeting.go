package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

type SQLiteMeetingRepo struct {
	db db.DBTX
}

func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: conn}
}

func (r *SQLiteMeetingRepo) ListByPerson(ctx context.Context, personID string) ([]domain.Meeting, error) {
	meetings, err := queryList(ctx, r.db,
		`SELECT id, date, title, summary, sentiment FROM meetings
		WHERE person_id = ? ORDER BY position`,
		[]any{personID}, scanMeeting)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	return meetings, nil
}

// Insert records m as the newest meeting.
func (r *SQLiteMeetingRepo) Insert(ctx context.Context, personID string, m domain.Meeting) error {
	pos, err := nextPosition(ctx, r.db, "meetings", personID, true)
	if err != nil {
		return err
	}
	return r.insertAt(ctx, personID, m, pos)
}

func (r *SQLiteMeetingRepo) insertAt(ctx context.Context, personID string, m domain.Meeting, pos int) error {
	sentiment := m.Sentiment
	if sentiment == "" {
		sentiment = domain.SentimentNeutral
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meetings (person_id, id, date, title, summary, sentiment, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		personID, m.ID, timeValue(m.Date), m.Title, m.Summary, string(sentiment), pos)
	if err != nil {
		return fmt.Errorf("inserting meeting %s: %w", m.ID, err)
	}
	return nil
}

func scanMeeting(rows *sql.Rows) (domain.Meeting, error) {
	var m domain.Meeting
	var date, sentiment string
	if err := rows.Scan(&m.ID, &date, &m.Title, &m.Summary, &sentiment); err != nil {
		return m, fmt.Errorf("scanning meeting: %w", err)
	}
	m.Sentiment = domain.Sentiment(sentiment)

	var err error
	if m.Date, err = parseRequiredTime(date); err != nil {
		return m, fmt.Errorf("meeting %s date: %w", m.ID, err)
	}
	return m, nil
}
