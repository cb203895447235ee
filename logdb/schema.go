// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	call integer not null,
	eventIndex integer not null,
	time integer not null,
	pool blob(20) not null,
	caller blob(20) not null,
	name text not null,
	data blob
);

CREATE INDEX if not exists poolIndex on event(pool);
CREATE INDEX if not exists callerIndex on event(caller);
CREATE INDEX if not exists nameIndex on event(name);
CREATE INDEX if not exists timeIndex on event(time);
`
