package seeder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-match/internal/database"
)

type stubDB struct{ database.DB }

type recordingSeeder struct {
	name string
	err  error
	ran  *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func TestRunner_OrderAndErrorWrapping(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	r := Runner{Seeders: []Seeder{
		recordingSeeder{name: "a", ran: &ran},
		nil,
		recordingSeeder{name: "b", err: boom, ran: &ran},
		recordingSeeder{name: "c", ran: &ran},
	}}

	err := r.Run(context.Background(), stubDB{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "seed b") {
		t.Fatalf("expected wrapped seeder error, got %v", err)
	}
	if strings.Join(ran, ",") != "a,b" {
		t.Fatalf("expected to stop after the failing seeder, ran %v", ran)
	}
}

func TestRunner_NilDB(t *testing.T) {
	if err := (Runner{Seeders: Defaults()}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestDefaults_SkillsBeforePostings(t *testing.T) {
	d := Defaults()
	if len(d) != 2 || d[0].Name() != "skills" || d[1].Name() != "job_postings" {
		t.Fatalf("unexpected default seeders")
	}
	seen := map[string]bool{}
	for _, s := range DefaultSkills {
		k := strings.ToLower(s.Name)
		if seen[k] {
			t.Fatalf("duplicate default skill %q", s.Name)
		}
		seen[k] = true
	}
}

type columnsDB struct {
	database.DB
	columns []string
	err     error
}

func (db columnsDB) Query(context.Context, string, ...any) (database.Rows, error) {
	if db.err != nil {
		return nil, db.err
	}
	return &columnRows{names: db.columns}, nil
}

type columnRows struct {
	names []string
	pos   int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }

func (r *columnRows) Next() bool {
	if r.pos >= len(r.names) {
		return false
	}
	r.pos++
	return true
}

func (r *columnRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.names[r.pos-1]
	return nil
}

func TestRequireColumns(t *testing.T) {
	ctx := context.Background()
	db := columnsDB{columns: []string{"id", "name"}}

	if err := RequireColumns(ctx, db, "skills", "id", "name"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	err := RequireColumns(ctx, db, "skills", "id", "category", "created_at")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "skills.category, skills.created_at") {
		t.Fatalf("expected every missing column, got %v", err)
	}

	for name, err := range map[string]error{
		"nil db":       RequireColumns(ctx, nil, "skills", "id"),
		"empty table":  RequireColumns(ctx, db, "", "id"),
		"no columns":   RequireColumns(ctx, db, "skills"),
		"blank column": RequireColumns(ctx, db, "skills", "id", ""),
	} {
		if !errors.Is(err, ErrBadSchemaCheck) {
			t.Fatalf("%s: expected ErrBadSchemaCheck, got %v", name, err)
		}
	}

	down := errors.New("connection refused")
	if err := RequireColumns(ctx, columnsDB{err: down}, "skills", "id"); !errors.Is(err, down) || errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected the query error wrapped, got %v", err)
	}
}
