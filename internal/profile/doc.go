// Package profile implements the public identity of an account: the username
// directory, page customizations, the link collection and the resolution of
// a public slug to the content behind it.
//
// Uniqueness of usernames is enforced by the store (see database.UpsertClaim),
// never by a check followed by a separate write in this package.
package profile
