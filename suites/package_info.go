// Package suites contains the conformance suite for the assertion library.
//
// Tests in this package use other packages as follows:
//
// assert: the assertion library under test; each case runs against an assert.Assert whose
// logger records the outcome (see asserttest)
//
// data: case file schemas and loader
//
// ldtest: the basic test scope framework; outcomes are checked with T.Assert
package suites
