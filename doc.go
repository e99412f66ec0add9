// Copyright (c) 2014 Utkan Güngördü <utkan@freeconsole.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package cuckoo implements a fixed-size, single-threaded d-ary cuckoo
// hash table: a slab of equal-size slots addressed by a small keyed
// hash family, with a bounded displacement walk that relocates
// occupants to make room for a new key instead of growing the table.
//
// A table is built with Engine.Setup and driven with Get, Insert,
// Update and Delete. There is no internal locking: callers that share
// an Engine across goroutines must serialize their own access, the
// same tradeoff the cuckoo engine this package is modeled on makes in
// exchange for a lock-free hot path. Items live in the one slab
// allocated by Setup; the hot path is not allocation-free, since each
// displacement walk allocates its path slice and log calls pass their
// arguments as interface values.
package cuckoo
