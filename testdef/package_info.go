// Package testdef defines the externalized test data: one record type per
// test-case family, plus the loader that reads the JSON data files. Keeping
// the inputs out of the test logic lets one test function run across many
// input combinations, and lets cases be added without touching Go code.
package testdef
