package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
)

type SQLitePersonRepo struct {
	db db.DBTX
}

func NewSQLitePersonRepo(conn db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: conn}
}

const personColumns = `id, name, role, company, email, phone, profile_image,
	reputation_score, relationship_status, last_contacted, created_at, updated_at`

// Create inserts p together with every collection it carries, in slice
// order. Callers wanting atomicity run it inside a UnitOfWork.
func (r *SQLitePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = nowUTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO people (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Role, p.Company, p.Email, p.Phone, p.ProfileImage,
		p.ReputationScore, string(p.RelationshipStatus), timeValue(p.LastContacted),
		timeValue(p.CreatedAt), timeValue(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}

	for i, sp := range p.SocialProfiles {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO social_profiles (person_id, position, platform, url, username) VALUES (?, ?, ?, ?, ?)`,
			p.ID, i, sp.Platform, sp.URL, sp.Username); err != nil {
			return fmt.Errorf("inserting social profile: %w", err)
		}
	}
	meetings := NewSQLiteMeetingRepo(r.db)
	for i, m := range p.Meetings {
		if err := meetings.insertAt(ctx, p.ID, m, i); err != nil {
			return err
		}
	}
	tasks := NewSQLiteTaskRepo(r.db)
	for i, t := range p.Tasks {
		if err := tasks.insertAt(ctx, p.ID, t, i); err != nil {
			return err
		}
	}
	finances := NewSQLiteFinanceRepo(r.db)
	for i, f := range p.Finances {
		if err := finances.insertAt(ctx, p.ID, f, i); err != nil {
			return err
		}
	}
	timeline := NewSQLiteTimelineRepo(r.db)
	for i, e := range p.Timeline {
		if err := timeline.insertAt(ctx, p.ID, e, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	p, err := scanPerson(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every contact ordered by name.
func (r *SQLitePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	return r.listWhere(ctx, `ORDER BY name COLLATE NOCASE, id`)
}

// SearchByName matches a substring of the name, ignoring ASCII case. A
// blank query matches nobody.
func (r *SQLitePersonRepo) SearchByName(ctx context.Context, query string) ([]*domain.Person, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return r.listWhere(ctx, `WHERE name LIKE ? ESCAPE '\' ORDER BY name COLLATE NOCASE, id`,
		"%"+escapeLike(query)+"%")
}

func (r *SQLitePersonRepo) listWhere(ctx context.Context, clause string, args ...any) ([]*domain.Person, error) {
	people, err := queryList(ctx, r.db, `SELECT `+personColumns+` FROM people `+clause, args, func(rows *sql.Rows) (*domain.Person, error) {
		return scanPerson(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	for _, p := range people {
		if err := r.hydrate(ctx, p); err != nil {
			return nil, err
		}
	}
	return people, nil
}

// Update writes the scalar fields of p. Collections are left untouched.
func (r *SQLitePersonRepo) Update(ctx context.Context, p *domain.Person) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE people SET name = ?, role = ?, company = ?, email = ?, phone = ?, profile_image = ?,
		reputation_score = ?, relationship_status = ?, last_contacted = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Role, p.Company, p.Email, p.Phone, p.ProfileImage,
		p.ReputationScore, string(p.RelationshipStatus), timeValue(p.LastContacted),
		timeValue(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	return requireAffected(res, "person "+p.ID)
}

func (r *SQLitePersonRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return requireAffected(res, "person "+id)
}

func (r *SQLitePersonRepo) hydrate(ctx context.Context, p *domain.Person) error {
	var err error
	p.SocialProfiles, err = queryList(ctx, r.db,
		`SELECT platform, url, username FROM social_profiles WHERE person_id = ? ORDER BY position`,
		[]any{p.ID}, func(rows *sql.Rows) (domain.SocialProfile, error) {
			var sp domain.SocialProfile
			err := rows.Scan(&sp.Platform, &sp.URL, &sp.Username)
			return sp, err
		})
	if err != nil {
		return fmt.Errorf("listing social profiles: %w", err)
	}
	if p.Meetings, err = NewSQLiteMeetingRepo(r.db).ListByPerson(ctx, p.ID); err != nil {
		return err
	}
	if p.Tasks, err = NewSQLiteTaskRepo(r.db).ListByPerson(ctx, p.ID); err != nil {
		return err
	}
	if p.Finances, err = NewSQLiteFinanceRepo(r.db).ListByPerson(ctx, p.ID); err != nil {
		return err
	}
	if p.Timeline, err = NewSQLiteTimelineRepo(r.db).ListByPerson(ctx, p.ID); err != nil {
		return err
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(s rowScanner) (*domain.Person, error) {
	var p domain.Person
	var status string
	var lastContacted sql.NullString
	var createdAt, updatedAt sql.NullString

	err := s.Scan(
		&p.ID, &p.Name, &p.Role, &p.Company, &p.Email, &p.Phone, &p.ProfileImage,
		&p.ReputationScore, &status, &lastContacted, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	p.RelationshipStatus = domain.RelationshipStatus(status)

	if p.LastContacted, err = parseTime(lastContacted); err != nil {
		return nil, fmt.Errorf("person %s last_contacted: %w", p.ID, err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("person %s created_at: %w", p.ID, err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("person %s updated_at: %w", p.ID, err)
	}
	return &p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
