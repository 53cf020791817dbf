// Package session binds an authenticated username to the operations that
// follow a login.
//
// A Session holds the username as explicit state and passes it to every
// owner-scoped operation; nothing is kept in process-wide variables, so any
// number of sessions can share the same components.
//
// Operations arrive as Commands. ParseCommand builds a Command from an
// operation tag and string arguments (as collected by the shell or a
// script); Dispatch routes a Command to the exercise ledger, category
// registry or goal tracker and returns a Result.
package session
