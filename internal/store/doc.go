// Package store provides SQLite-backed durable storage for fittrack.
//
// The store owns four tables:
//   - users: accounts (username UNIQUE, password stored verbatim)
//   - exercise_logs: exercise records owned by a user
//   - workout_categories: globally shared categories (category_name UNIQUE)
//   - workout_goals: goals owned by a user
//
// # Write Discipline
//
// Every mutation goes through Insert or Exec, which run the statement in its
// own transaction and commit before returning. A failed statement or commit
// rolls the transaction back, so an operation is either fully applied or not
// applied at all.
//
// Dynamic values are always bound parameters. Table and column names are
// fixed strings in the calling package.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Owner columns must reference an existing user
//
// The path ":memory:" selects an in-memory database, used by tests.
package store
