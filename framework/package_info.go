// Package framework contains the low-level pieces of the test-support toolkit
// that are not specific to any one assertion helper: the basic Logger interface
// used for debug output, and CapturingLogger which records that output so a
// test runner can decide later whether to display it.
//
// Higher-level components live in the subpackages: paramtest (parametric test
// scopes), logging and logcapture (leveled loggers and log-count assertions),
// helpers (small shared test utilities), noise (synthetic data generators for
// test fixtures), and opt (optional values).
package framework
