package couchbase

import (
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"
)

const lockDocID = "db_lock"

// WriterLock arbitrates bulk writers over the shared bucket with a lease
// document. The seed job takes the lease before resetting collections so
// that two concurrent writers cannot interleave their document writes.
type WriterLock struct {
	bucket *gocb.Bucket
	owner  string
	lease  time.Duration
	locked bool
}

// lockDocument is the lease record stored under lockDocID.
type lockDocument struct {
	Locked    bool      `json:"locked"`
	LockedAt  time.Time `json:"lockedAt"`
	LockedBy  string    `json:"lockedBy"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewWriterLock creates a lock held on behalf of owner with the given
// lease duration.
func NewWriterLock(conn *Connection, owner string, lease time.Duration) *WriterLock {
	return &WriterLock{bucket: conn.Bucket(), owner: owner, lease: lease}
}

// Lock takes the lease. Fails when another owner holds an unexpired lease.
func (l *WriterLock) Lock() error {
	if l.locked {
		return fmt.Errorf("lock already held by this process")
	}

	col := l.bucket.DefaultCollection()

	if doc, err := col.Get(lockDocID, &gocb.GetOptions{}); err == nil {
		var current lockDocument
		if err := doc.Content(&current); err == nil && current.Locked {
			if time.Now().UTC().Before(current.ExpiresAt) {
				return fmt.Errorf("storage locked by %s until %s", current.LockedBy, current.ExpiresAt)
			}
			log.Warn().
				Str("lockedBy", current.LockedBy).
				Time("expiresAt", current.ExpiresAt).
				Msg("Taking over expired writer lease")
		}
	}

	lease := lockDocument{
		Locked:    true,
		LockedAt:  time.Now().UTC(),
		LockedBy:  l.owner,
		ExpiresAt: time.Now().UTC().Add(l.lease),
	}
	if _, err := col.Upsert(lockDocID, lease, &gocb.UpsertOptions{}); err != nil {
		return fmt.Errorf("failed to create lock document: %w", err)
	}

	l.locked = true
	log.Info().Str("owner", l.owner).Msg("Writer lease taken")
	return nil
}

// Unlock releases the lease.
func (l *WriterLock) Unlock() error {
	if !l.locked {
		return fmt.Errorf("lock is not held")
	}

	col := l.bucket.DefaultCollection()
	if _, err := col.Remove(lockDocID, &gocb.RemoveOptions{}); err != nil {
		return fmt.Errorf("failed to remove lock document: %w", err)
	}

	l.locked = false
	log.Info().Str("owner", l.owner).Msg("Writer lease released")
	return nil
}

// IsLocked reports whether this process holds the lease.
func (l *WriterLock) IsLocked() bool {
	return l.locked
}
