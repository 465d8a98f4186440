package application

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/go-faster/errors"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// MigrationManager collects the schema filesystems modules register and
// applies them with goose. Migrations run over database/sql so goose can
// manage its own versioning table.
type MigrationManager interface {
	RegisterSchema(fsys fs.FS)
	Up(ctx context.Context) error
	Reset(ctx context.Context) error
}

func NewMigrationManager(dsn string) MigrationManager {
	return &migrationManager{dsn: dsn}
}

type migrationManager struct {
	dsn     string
	schemas []fs.FS
}

func (m *migrationManager) RegisterSchema(fsys fs.FS) {
	m.schemas = append(m.schemas, fsys)
}

func (m *migrationManager) Up(ctx context.Context) error {
	return m.each(ctx, func(ctx context.Context, p *goose.Provider) error {
		_, err := p.Up(ctx)
		return err
	})
}

// Reset rolls every registered schema all the way down.
func (m *migrationManager) Reset(ctx context.Context) error {
	return m.each(ctx, func(ctx context.Context, p *goose.Provider) error {
		_, err := p.DownTo(ctx, 0)
		return err
	})
}

func (m *migrationManager) each(ctx context.Context, apply func(context.Context, *goose.Provider) error) error {
	db, err := sql.Open("postgres", m.dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open migration connection")
	}
	defer func() { _ = db.Close() }()

	for _, fsys := range m.schemas {
		provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
		if err != nil {
			return errors.Wrap(err, "failed to create migration provider")
		}
		if err := apply(ctx, provider); err != nil {
			return errors.Wrap(err, "migration failed")
		}
	}
	return nil
}
