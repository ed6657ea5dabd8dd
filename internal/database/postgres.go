package database

import (
	"database/sql"
)

type PgChattyRepository struct {
	conn *sql.DB
}

func NewPgChattyRepository(dsn string) (*PgChattyRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgChattyRepository{conn: db}, nil
}

func (db *PgChattyRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgChattyRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
