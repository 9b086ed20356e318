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

package sqlite

const (
	// SchemaVersion is the version of the SQLite schema understood by this
	// backend.
	SchemaVersion = 1
	// Schema is the SQLite database layout.
	Schema = `CREATE TABLE meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		seed INTEGER NOT NULL
	);
	CREATE TABLE ases (
		id INTEGER PRIMARY KEY,
		tier TEXT NOT NULL,
		p2p_target INTEGER NOT NULL,
		p2c_target INTEGER NOT NULL
	);
	CREATE TABLE ixps (
		id INTEGER PRIMARY KEY
	);
	CREATE TABLE p2c (
		provider INTEGER NOT NULL REFERENCES ases(id) ON DELETE CASCADE,
		customer INTEGER NOT NULL REFERENCES ases(id) ON DELETE CASCADE,
		PRIMARY KEY (provider, customer)
	);
	CREATE TABLE p2p (
		low INTEGER NOT NULL REFERENCES ases(id) ON DELETE CASCADE,
		high INTEGER NOT NULL REFERENCES ases(id) ON DELETE CASCADE,
		PRIMARY KEY (low, high),
		CHECK (low < high)
	);
	CREATE TABLE ixp_members (
		ixp INTEGER NOT NULL REFERENCES ixps(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		asid INTEGER NOT NULL REFERENCES ases(id) ON DELETE CASCADE,
		PRIMARY KEY (ixp, position),
		UNIQUE (ixp, asid)
	);`
)
