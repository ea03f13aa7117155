// Package htlctest provides mocks and helpers shared by the tests of the
// program and its runtime.
package htlctest
