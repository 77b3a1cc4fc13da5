package models

import "time"

// DeletedVolume is one row from the Cinder volumes table for a volume that
// has transitioned to the deleted state. Cinder owns the record; the logger
// only ever reads it.
type DeletedVolume struct {
	// ID is the volume UUID, stable across the volume's lifetime.
	ID string
	// DeletedAt is the time the volume was soft-deleted. Rows where this is
	// NULL never reach us; the window comparison cannot match NULL.
	DeletedAt time.Time
}
