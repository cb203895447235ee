// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/launch"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a memory db lives as long as its only connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert writes the events of one call atomically and fills their Seq.
func (db *LogDB) Insert(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO event(call, eventIndex, time, pool, caller, name, data) VALUES(?,?,?,?,?,?,?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		res, err := stmt.ExecContext(ctx, ev.Call, ev.Index, ev.Time, ev.Pool.Bytes(), ev.Caller.Bytes(), ev.Name, ev.Data)
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return err
		}
		ev.Seq = uint64(id)
	}
	return tx.Commit()
}

// LastCall returns the highest call number written, zero when empty.
func (db *LogDB) LastCall(ctx context.Context) (uint64, error) {
	var call sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(call) FROM event").Scan(&call); err != nil {
		return 0, err
	}
	return uint64(call.Int64), nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, call, eventIndex, time, pool, caller, name, data FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		condition := "seq"
		if filter.Range.Unit == Time {
			condition = "time"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Pool != nil {
			args = append(args, criteria.Pool.Bytes())
			stmt += " AND pool = ? "
		}
		if criteria.Caller != nil {
			args = append(args, criteria.Caller.Bytes())
			stmt += " AND caller = ? "
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			stmt += " AND name = ? "
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev     Event
			pool   []byte
			caller []byte
		)
		if err := rows.Scan(&ev.Seq, &ev.Call, &ev.Index, &ev.Time, &pool, &caller, &ev.Name, &ev.Data); err != nil {
			return nil, err
		}
		ev.Pool = launch.BytesToAddress(pool)
		ev.Caller = launch.BytesToAddress(caller)
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
