// Package uniuri generates cryptographically secure random strings suitable for use as unique identifiers.
// Collect5 uses it for project and form refs.
package uniuri
