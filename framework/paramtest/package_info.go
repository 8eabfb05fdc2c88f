// Package paramtest contains a test scope runner that is similar to Go's
// testing package, with first-class support for parametric sub-tests: labeled
// blocks with named parameter values that are reported independently. It also
// provides test filtering, console and JUnit result reporting, and loading of
// parametric case tables from YAML files.
package paramtest
