// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists the pool's audit trail in sqlite, so operators can
// reconstruct the history of any deposit after a restart.
package eventdb

import (
	"context"
	"database/sql"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/stakepool-labs/stakepool/pool"
	"github.com/stakepool-labs/stakepool/stake"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	kind TEXT NOT NULL,
	account TEXT NOT NULL,
	depositIndex INTEGER NOT NULL,
	amount INTEGER NOT NULL,
	totalStaked INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_kind ON event(kind);
CREATE INDEX IF NOT EXISTS event_account ON event(account);`

// Order of filter results.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Options limits and offsets filter results.
type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter narrows an event query. Zero-valued fields match everything.
type Filter struct {
	Kind    pool.EventKind
	Account stake.Identity
	Index   *uint64
	Order   Order
	Options *Options
}

// EventDB is the sqlite-backed event store. It implements pool.EventSink.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() {
	db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Record implements pool.EventSink.
func (db *EventDB) Record(ev *pool.Event) error {
	_, err := db.db.Exec(
		"INSERT INTO event(ts, kind, account, depositIndex, amount, totalStaked) VALUES(?,?,?,?,?,?)",
		ev.Time.Unix(),
		string(ev.Kind),
		string(ev.Account),
		int64(ev.Index),
		int64(ev.Amount),
		int64(ev.TotalStaked),
	)
	return err
}

// FilterEvents queries stored events. A nil filter returns everything in
// insertion order.
func (db *EventDB) FilterEvents(ctx context.Context, filter *Filter) ([]*pool.Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT ts, kind, account, depositIndex, amount, totalStaked FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT ts, kind, account, depositIndex, amount, totalStaked FROM event WHERE 1"
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		stmt += " AND kind = ?"
	}
	if filter.Account != "" {
		args = append(args, string(filter.Account))
		stmt += " AND account = ?"
	}
	if filter.Index != nil {
		args = append(args, int64(*filter.Index))
		stmt += " AND depositIndex = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " limit ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *EventDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*pool.Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*pool.Event
	for rows.Next() {
		var (
			ts          int64
			kind        string
			account     string
			index       int64
			amount      int64
			totalStaked int64
		)
		if err := rows.Scan(&ts, &kind, &account, &index, &amount, &totalStaked); err != nil {
			return nil, err
		}
		events = append(events, &pool.Event{
			Time:        time.Unix(ts, 0).UTC(),
			Kind:        pool.EventKind(kind),
			Account:     stake.Identity(account),
			Index:       uint64(index),
			Amount:      uint64(amount),
			TotalStaked: uint64(totalStaked),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
