/*
 * dedup.go, part of gopqr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap/zapcore"
)

//DuplicateLimit is the default number of warnings of the same kind
//after which they are suppressed.
const DuplicateLimit = 30

type counter struct {
	sync.Mutex
	n map[string]int
}

//inc increases the count for p, and returns the new value.
func (c *counter) inc(p string) int {
	c.Lock()
	defer c.Unlock()
	c.n[p]++
	return c.n[p]
}

//dedupCore counts the warnings that start with each of its prefixes. The
//first limit-1 are written, the limit-th is replaced by a notice, and the
//rest are dropped.
type dedupCore struct {
	zapcore.Core
	limit    int
	prefixes []string
	counts   *counter
}

//NewDedupCore wraps core so that, of the warnings starting with each of
//the prefixes, only the first limit-1 are written, followed by a notice
//that the rest will be suppressed. Other entries are written unchanged.
func NewDedupCore(core zapcore.Core, limit int, prefixes ...string) zapcore.Core {
	return &dedupCore{Core: core, limit: limit, prefixes: prefixes, counts: &counter{n: make(map[string]int)}}
}

func (D *dedupCore) With(fields []zapcore.Field) zapcore.Core {
	return &dedupCore{Core: D.Core.With(fields), limit: D.limit, prefixes: D.prefixes, counts: D.counts}
}

func (D *dedupCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if D.Enabled(ent.Level) {
		return ce.AddCore(ent, D)
	}
	return ce
}

func (D *dedupCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if ent.Level != zapcore.WarnLevel {
		return D.Core.Write(ent, fields)
	}
	p := matching(ent.Message, D.prefixes)
	if p == "" {
		return D.Core.Write(ent, fields)
	}
	n := D.counts.inc(p)
	switch {
	case n > D.limit:
		return nil
	case n == D.limit:
		ent.Message = fmt.Sprintf("Suppressing further '%s' messages", p)
		return D.Core.Write(ent, nil)
	}
	return D.Core.Write(ent, fields)
}
