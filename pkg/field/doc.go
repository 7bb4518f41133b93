// Package field defines the read-only field descriptor hosts construct for
// every dispatch call: a tagged type description, optional constraints,
// display metadata, and free-form UI hints.
package field
