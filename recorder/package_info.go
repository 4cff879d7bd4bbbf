// Package recorder saves the IDs of failed tests after a run, so that a later run can skip them
// (see the -skip-file option) or another tool can report on them.
package recorder
