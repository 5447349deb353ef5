// Package ecbtests contains the contract test suite for the European
// Central Bank exchange-rate API.
//
// Each file named tests_*.go covers one family of data-driven test cases;
// the inputs for every family come from the JSON files loaded by the testdef
// package. Tests make real requests against the live API, so individual
// outcomes depend on the remote service being up and on its current data.
package ecbtests
