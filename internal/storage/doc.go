// Package storage persists resolved schedules as JSON records.
//
// Records are written atomically so a reader never sees a half-written file,
// and paths may start with "~/" to refer to the user's home directory.
package storage
