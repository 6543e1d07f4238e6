// Package mocks repository 介面的 testify mock
package mocks

import "github.com/stretchr/testify/mock"

// TestingT 由 *testing.T 實作；測試結束時自動檢查 expectations
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}
