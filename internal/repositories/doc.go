// Package repositories provides the persistence layer for the console.
//
// [CredentialRepository] implements [session.Store] on SQLite so the
// backend token (and the opaque user_info blob) survive restarts. The
// schema lives in internal/shared's embedded migrations.
package repositories
