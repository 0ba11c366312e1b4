// Package tabular implements the typed store ports over any
// driven.TableStore. It holds the key layout and the document encoding;
// the underlying engine only sees opaque keyed records. The postgres
// package is the primary production path; this one runs the same core
// against memdb or any other engine offering the five-operation contract.
package tabular

import (
	"strings"
	"time"
)

// Collection names passed to the underlying TableStore.
const (
	TableEntities  = "entities"
	TableRelations = "relations"
	TableSnapshots = "snapshots"
	TableHistory   = "history"
	TableChangeLog = "change_log"
)

// Tables lists every collection a TableStore must initialize to back the
// full store set.
func Tables() []string {
	return []string{TableEntities, TableRelations, TableSnapshots, TableHistory, TableChangeLog}
}

const keySep = "/"

func joinKey(parts ...string) string {
	return strings.Join(parts, keySep)
}

// timeKey renders a timestamp fixed-width so lexicographic key order is
// chronological order.
func timeKey(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000")
}
