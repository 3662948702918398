// Package session keeps puzzle sessions in memory.
//
// Each session owns a table.Table built from its puzzle configuration.
// Lookups are case-insensitive. Generated IDs are the first eight hex
// characters of a random UUID; callers may also pick their own ID made of
// letters, digits, '-' and '_'.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
//
// Sessions are not persisted; restarting the server drops them.
package session
