// Copyright 2026 The mini-internet-simulation Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqlite stores a snapshot in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"slices"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/private/storage/db"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
)

var _ snapshot.Store = (*Backend)(nil)

// Backend implements snapshot.Store on SQLite.
type Backend struct {
	db *db.Sqlite
}

// New opens the database at path and applies the schema if needed.
func New(ctx context.Context, path string) (*Backend, error) {
	d, err := db.NewSqlite(path)
	if err != nil {
		return nil, err
	}
	if err := d.Setup(ctx, Schema, SchemaVersion); err != nil {
		d.Close()
		return nil, err
	}
	return &Backend{db: d}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Write replaces the stored snapshot in a single transaction.
func (b *Backend) Write(ctx context.Context, s *snapshot.Snapshot) error {
	return b.db.Tx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"ixp_members", "p2p", "p2c", "ixps", "ases", "meta"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return db.NewWriteError("clearing table", err, "table", table)
			}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO meta (id, version, seed) VALUES (1, ?, ?)`,
			s.Version, s.Seed)
		if err != nil {
			return db.NewWriteError("inserting meta", err)
		}
		for _, a := range s.ASes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO ases (id, tier, p2p_target, p2c_target) VALUES (?, ?, ?, ?)`,
				a.ID, a.Tier.String(), a.P2PTarget, a.P2CTarget)
			if err != nil {
				return db.NewWriteError("inserting AS", err, "as", a.ID)
			}
		}
		for _, a := range s.ASes {
			for _, c := range a.Customers {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO p2c (provider, customer) VALUES (?, ?)`, a.ID, c)
				if err != nil {
					return db.NewWriteError("inserting p2c", err, "provider", a.ID, "customer", c)
				}
			}
			for _, p := range a.Peers {
				if p < a.ID {
					continue
				}
				_, err := tx.ExecContext(ctx, `INSERT INTO p2p (low, high) VALUES (?, ?)`, a.ID, p)
				if err != nil {
					return db.NewWriteError("inserting p2p", err, "a", a.ID, "b", p)
				}
			}
		}
		for _, x := range s.IXPs {
			if _, err := tx.ExecContext(ctx, `INSERT INTO ixps (id) VALUES (?)`, x.ID); err != nil {
				return db.NewWriteError("inserting IXP", err, "ixp", x.ID)
			}
			for i, m := range x.Members {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO ixp_members (ixp, position, asid) VALUES (?, ?, ?)`, x.ID, i, m)
				if err != nil {
					return db.NewWriteError("inserting IXP member", err, "ixp", x.ID, "as", m)
				}
			}
		}
		return nil
	})
}

// Read loads the stored snapshot. Relation lists are returned in ascending
// order.
func (b *Backend) Read(ctx context.Context) (*snapshot.Snapshot, error) {
	s := &snapshot.Snapshot{}
	err := b.db.QueryRowContext(ctx, `SELECT version, seed FROM meta WHERE id = 1`).
		Scan(&s.Version, &s.Seed)
	if err != nil {
		return nil, db.NewReadError("reading meta", err)
	}

	index := make(map[astopo.ASID]int)
	err = b.query(ctx, `SELECT id, tier, p2p_target, p2c_target FROM ases ORDER BY id`,
		func(rows *sql.Rows) error {
			var (
				a    snapshot.AS
				tier string
			)
			if err := rows.Scan(&a.ID, &tier, &a.P2PTarget, &a.P2CTarget); err != nil {
				return err
			}
			t, err := astopo.ParseTier(tier)
			if err != nil {
				return db.NewDataError("invalid tier", err, "as", a.ID)
			}
			a.Tier = t
			a.Peers, a.Providers, a.Customers = []astopo.ASID{}, []astopo.ASID{}, []astopo.ASID{}
			a.IXPs = []astopo.IXPID{}
			index[a.ID] = len(s.ASes)
			s.ASes = append(s.ASes, a)
			return nil
		})
	if err != nil {
		return nil, err
	}
	lookup := func(id astopo.ASID) (*snapshot.AS, error) {
		i, ok := index[id]
		if !ok {
			return nil, db.NewDataError("dangling AS reference", nil, "as", id)
		}
		return &s.ASes[i], nil
	}

	err = b.query(ctx, `SELECT provider, customer FROM p2c ORDER BY provider, customer`,
		func(rows *sql.Rows) error {
			var p, c astopo.ASID
			if err := rows.Scan(&p, &c); err != nil {
				return err
			}
			pa, err := lookup(p)
			if err != nil {
				return err
			}
			ca, err := lookup(c)
			if err != nil {
				return err
			}
			pa.Customers = append(pa.Customers, c)
			ca.Providers = append(ca.Providers, p)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = b.query(ctx, `SELECT low, high FROM p2p ORDER BY low, high`,
		func(rows *sql.Rows) error {
			var lo, hi astopo.ASID
			if err := rows.Scan(&lo, &hi); err != nil {
				return err
			}
			la, err := lookup(lo)
			if err != nil {
				return err
			}
			ha, err := lookup(hi)
			if err != nil {
				return err
			}
			la.Peers = append(la.Peers, hi)
			ha.Peers = append(ha.Peers, lo)
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.IXPs = []snapshot.IXP{}
	err = b.query(ctx, `SELECT ixps.id, ixp_members.asid FROM ixps
		JOIN ixp_members ON ixp_members.ixp = ixps.id
		ORDER BY ixps.id, ixp_members.position`,
		func(rows *sql.Rows) error {
			var (
				x astopo.IXPID
				m astopo.ASID
			)
			if err := rows.Scan(&x, &m); err != nil {
				return err
			}
			a, err := lookup(m)
			if err != nil {
				return err
			}
			if n := len(s.IXPs); n == 0 || s.IXPs[n-1].ID != x {
				s.IXPs = append(s.IXPs, snapshot.IXP{ID: x})
			}
			last := &s.IXPs[len(s.IXPs)-1]
			last.Members = append(last.Members, m)
			a.IXPs = append(a.IXPs, x)
			return nil
		})
	if err != nil {
		return nil, err
	}
	for i := range s.ASes {
		// Peers are collected from both columns.
		slices.Sort(s.ASes[i].Peers)
	}
	return s, nil
}

func (b *Backend) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := b.db.QueryContext(ctx, query)
	if err != nil {
		return db.NewReadError("querying", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return db.NewReadError("scanning row", err)
		}
	}
	if err := rows.Err(); err != nil {
		return db.NewReadError("iterating rows", err)
	}
	return nil
}
