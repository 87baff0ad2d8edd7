// Package main provides the entry point for the Collect5 server.
// It initializes and runs a web server using the Fiber framework that accepts
// hierarchical field-survey entry uploads through a JSON API. Entries are
// persisted with gorm; the upload path maintains denormalized child and
// branch counters, enforces per-input uniqueness rules and checks per-project
// role permissions on edits.
package main
