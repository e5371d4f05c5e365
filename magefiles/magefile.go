// Package main provides build targets for the clientbook project using Mage.
//
// Usage:
//
//	mage build             Compile clientbook binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests with a coverage profile
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install clientbook to GOPATH/bin
//	mage stats             Print Go LOC as a JSON record
package main
