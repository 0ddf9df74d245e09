// Package testsupport provides shared fixtures for converter tests.
package testsupport
