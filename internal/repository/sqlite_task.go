package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) ListByPerson(ctx context.Context, personID string) ([]domain.Task, error) {
	tasks, err := queryList(ctx, r.db,
		`SELECT id, title, due_date, status, priority FROM tasks
		WHERE person_id = ? ORDER BY position`,
		[]any{personID}, scanTask)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Insert(ctx context.Context, personID string, t domain.Task) error {
	pos, err := nextPosition(ctx, r.db, "tasks", personID, false)
	if err != nil {
		return err
	}
	return r.insertAt(ctx, personID, t, pos)
}

func (r *SQLiteTaskRepo) insertAt(ctx context.Context, personID string, t domain.Task, pos int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (person_id, id, title, due_date, status, priority, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		personID, t.ID, t.Title, timeValue(t.DueDate), string(t.Status), string(t.Priority), pos)
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateStatus(ctx context.Context, personID, taskID string, status domain.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ? WHERE person_id = ? AND id = ?`,
		string(status), personID, taskID)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return requireAffected(res, "task "+taskID)
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var t domain.Task
	var due sql.NullString
	var status, priority string
	if err := rows.Scan(&t.ID, &t.Title, &due, &status, &priority); err != nil {
		return t, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)

	var err error
	if t.DueDate, err = parseTime(due); err != nil {
		return t, fmt.Errorf("task %s due_date: %w", t.ID, err)
	}
	return t, nil
}
