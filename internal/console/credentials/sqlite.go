package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/migrations"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/repositories/metadata"
	"github.com/dmitrijs2005/wmsconsole/internal/dbx"
	"github.com/dmitrijs2005/wmsconsole/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps credentials in the metadata table of the local database,
// so a session survives console restarts.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Set(ctx context.Context, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := repository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserKey, raw)
	})
}

// Get reads token and user in a single query, so a concurrent Set in
// another process cannot pair a new token with a stale user.
func (s *SQLiteStore) Get(ctx context.Context) (Credentials, error) {
	values, err := repository(s.db).List(ctx)
	if err != nil {
		return Credentials{}, err
	}

	token := values[common.TokenKey]
	if len(token) == 0 {
		return Credentials{}, ErrNoCredentials
	}

	creds := Credentials{Token: string(token)}
	if raw := values[common.UserKey]; len(raw) > 0 {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return Credentials{}, fmt.Errorf("decode cached user: %w", err)
		}
		creds.User = &u
	}
	return creds, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return repository(s.db).Delete(ctx, common.TokenKey, common.UserKey)
}

func repository(q dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(q)
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens (creating if needed) the SQLite file at path and
// migrates it. ":memory:" is accepted and pinned to a single connection.
func OpenDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}
