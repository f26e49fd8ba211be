// Package harness runs the compiled frota binary against an isolated FROTA_HOME.
//
// Environment variables managed:
//   - FROTA_HOME: a temp directory per test
//   - FROTA_DEBUG: cleared to keep logs out of the way
//   - every other FROTA_* variable is removed so settings come only from the test
package harness
