// Package model defines the entity types shared by every fittrack component.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal.
//
// Key design constraints:
//   - Ids are assigned by the store and never reused
//   - Owner fields hold the username of the account that created the record
//   - All JSON tags use snake_case
package model
