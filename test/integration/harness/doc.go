// Package harness provides utilities for integration testing the lumina CLI.
// It handles binary compilation, environment isolation, command execution
// and an in-process fake gateway for the binary to talk to.
//
// Environment variables managed:
//   - LUMINA_HOME: Isolated per test (temp directory)
//   - LUMINA_BASE_URL: Points at the test's fake gateway
//   - LUMINA_DEBUG: Disabled to reduce noise
package harness
