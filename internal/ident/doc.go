// Package ident defines the two-part identifier used to name tasks, event
// types and handler registrations across every module loaded into one host.
//
// An Identifier is a plain comparable value, so it can key Go maps directly
// and two identifiers are equal exactly when their scope and name are equal.
package ident
