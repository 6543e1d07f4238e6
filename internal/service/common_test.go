package service_test

import (
	"context"
	"time"

	"event-platform/internal/auth"

	"github.com/jackc/pgx/v5"
)

// fakeTransactor 直接執行 fn；repository 都是 mock，不需要真的 tx
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// bcrypt 最低 cost，讓測試跑得快
var testHasher = auth.NewBcryptHasher(4)

func mustHash(password string) string {
	digest, err := testHasher.Hash(password)
	if err != nil {
		panic(err)
	}
	return digest
}
