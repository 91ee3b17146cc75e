package kvstore

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// pgStore keeps documents in a single (key, value jsonb) table; see the
// migrations for the schema.
type pgStore struct {
	db *sqlx.DB
}

var _ Store = (*pgStore)(nil)

// OpenPostgres connects to the Postgres-backed store.
func OpenPostgres(databaseURL string) (Store, *sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to postgres")
	}
	return &pgStore{db: db}, db, nil
}

func (s *pgStore) Get(key string, dst interface{}) error {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM document WHERE key = $1`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s", key)
	}
	return errors.Wrapf(json.Unmarshal(data, dst), "decoding %s", key)
}

func (s *pgStore) Set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	_, err = s.db.Exec(
		`INSERT INTO document (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, data,
	)
	return errors.Wrapf(err, "writing %s", key)
}
