// Package submit delivers base-figure records to a list store.
//
// Every sink implements core.Sink: one call per row, each an independent
// create-or-update keyed by the row's market. Sinks never retry; the caller
// counts failures and moves on to the next row.
package submit
