// Package monitor publishes the progress of a test run as Server-Sent Events, so that a
// browser or another tool can follow a long run while it happens.
package monitor
