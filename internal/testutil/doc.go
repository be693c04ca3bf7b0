// Package testutil provides shared fixtures for gradebook package tests.
package testutil
