package test

import (
	"context"
	"time"
)

// MockContext is a context.Context whose values can be mutated between
// assertions, so suites can switch the request locale without rebuilding
// the chain by hand.
type MockContext struct {
	Ctx context.Context
}

func (ctx *MockContext) SetLocale(key interface{}, locale string) {
	ctx.Ctx = context.WithValue(ctx.Ctx, key, locale)
}

func (ctx *MockContext) Deadline() (time.Time, bool) {
	return ctx.Ctx.Deadline()
}

func (ctx *MockContext) Done() <-chan struct{} {
	return ctx.Ctx.Done()
}

func (ctx *MockContext) Err() error {
	return ctx.Ctx.Err()
}

func (ctx *MockContext) Value(key interface{}) interface{} {
	return ctx.Ctx.Value(key)
}
