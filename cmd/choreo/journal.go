package main

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/petrijr/choreo"
)

const redisPrefix = "choreo:"

// openJournal opens a SQLite file, or a Redis server for redis:// URLs.
func openJournal(target string) (choreo.Journal, func() error, error) {
	if strings.HasPrefix(target, "redis://") || strings.HasPrefix(target, "rediss://") {
		opts, err := redis.ParseURL(target)
		if err != nil {
			return nil, nil, fmt.Errorf("journal: %w", err)
		}
		client := redis.NewClient(opts)
		return choreo.NewRedisJournal(client, redisPrefix), client.Close, nil
	}

	db, err := sql.Open("sqlite", "file:"+target+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, nil, fmt.Errorf("journal: %w", err)
	}
	j, err := choreo.NewSQLiteJournal(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("journal: %w", err)
	}
	return j, db.Close, nil
}
