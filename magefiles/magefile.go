// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the liuren project using Mage.
//
// Usage:
//
//	mage build          Compile the liuren binary to bin/
//	mage test:all       Run every test
//	mage test:unit      Run tests without the slow calendar sweeps
//	mage test:race      Run every test with the race detector
//	mage test:cover     Write a coverage profile to bin/cover.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install liuren to GOPATH/bin
//	mage stats          Print Go lines of code per package
package main
