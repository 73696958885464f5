// Package state holds the locally visible collections the CLI renders and
// the compensating-action pattern for optimistic updates: snapshot, apply the
// speculative change, restore the snapshot on failure, discard it on success.
package state
