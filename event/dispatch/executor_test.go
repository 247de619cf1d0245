package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecutor_Success(t *testing.T) {
	e := NewExecutor()

	var got any
	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		got = payload
		return nil
	})

	result := e.Execute(context.Background(), "hello", handler)
	if !result.IsSuccess() {
		t.Errorf("expected success, got %+v", result)
	}
	if got != "hello" {
		t.Errorf("payload = %v, want hello", got)
	}
	if result.Duration < 0 {
		t.Error("duration should be non-negative")
	}
}

func TestExecutor_HandlerError(t *testing.T) {
	e := NewExecutor()
	wantErr := errors.New("handler failed")

	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		return wantErr
	})

	result := e.Execute(context.Background(), nil, handler)
	if result.IsSuccess() {
		t.Error("expected failure")
	}
	if !errors.Is(result.Error, wantErr) {
		t.Errorf("Error = %v, want %v", result.Error, wantErr)
	}
	if result.Panicked {
		t.Error("error return is not a panic")
	}
}

func TestExecutor_PanicRecovered(t *testing.T) {
	var hookPayload, hookValue any
	var hookStack []byte
	e := NewExecutor(WithExecutorPanicHandler(func(payload, panicValue any, stack []byte) {
		hookPayload = payload
		hookValue = panicValue
		hookStack = stack
	}))

	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		panic("kaboom")
	})

	result := e.Execute(context.Background(), "evt", handler)
	if !result.Panicked {
		t.Fatal("expected Panicked")
	}
	if result.PanicValue != "kaboom" {
		t.Errorf("PanicValue = %v, want kaboom", result.PanicValue)
	}
	if len(result.PanicStack) == 0 {
		t.Error("expected captured stack")
	}
	if hookPayload != "evt" || hookValue != "kaboom" || len(hookStack) == 0 {
		t.Error("panic hook did not receive the panic details")
	}
}

func TestExecutor_PanicHookPanicIsContained(t *testing.T) {
	e := NewExecutor(WithExecutorPanicHandler(func(payload, panicValue any, stack []byte) {
		panic("hook panic")
	}))

	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		panic("original")
	})

	// Must not propagate either panic.
	result := e.Execute(context.Background(), nil, handler)
	if !result.Panicked || result.PanicValue != "original" {
		t.Errorf("expected the original panic in the result, got %+v", result)
	}
}

func TestExecutor_CancelledContextSkips(t *testing.T) {
	e := NewExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran bool
	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		ran = true
		return nil
	})

	result := e.Execute(ctx, nil, handler)
	if !result.Skipped {
		t.Error("expected Skipped for a cancelled context")
	}
	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("Error = %v, want context.Canceled", result.Error)
	}
	if ran {
		t.Error("handler must not run with a cancelled context")
	}
}

func TestExecutor_ExecuteAll(t *testing.T) {
	e := NewExecutor()

	var order []int
	handlers := []Handler{
		HandlerFunc(func(ctx context.Context, payload any) error {
			order = append(order, 0)
			return nil
		}),
		HandlerFunc(func(ctx context.Context, payload any) error {
			order = append(order, 1)
			return errors.New("middle fails")
		}),
		HandlerFunc(func(ctx context.Context, payload any) error {
			order = append(order, 2)
			return nil
		}),
	}

	results := e.ExecuteAll(context.Background(), nil, handlers)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].IsSuccess() || results[1].IsSuccess() || !results[2].IsSuccess() {
		t.Error("unexpected result pattern; a failure must not stop later handlers")
	}
	if len(order) != 3 {
		t.Errorf("all handlers should run, got order %v", order)
	}
}

func TestExecutor_ExecuteAll_CancelMidway(t *testing.T) {
	e := NewExecutor()
	ctx, cancel := context.WithCancel(context.Background())

	handlers := []Handler{
		HandlerFunc(func(ctx context.Context, payload any) error {
			cancel()
			return nil
		}),
		HandlerFunc(func(ctx context.Context, payload any) error {
			t.Error("second handler must not run after cancellation")
			return nil
		}),
	}

	results := e.ExecuteAll(ctx, nil, handlers)
	if !results[0].IsSuccess() {
		t.Error("first handler should have run")
	}
	if !results[1].Skipped {
		t.Error("second handler should be skipped")
	}
}

func TestResult_IsSuccess(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"success", Result{Success: true}, true},
		{"error", Result{Error: errors.New("x")}, false},
		{"panic", Result{Success: false, Panicked: true}, false},
		{"skipped", Result{Skipped: true, Error: context.Canceled}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsSuccess(); got != tt.want {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecutor_DurationMeasured(t *testing.T) {
	e := NewExecutor()
	handler := HandlerFunc(func(ctx context.Context, payload any) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})

	result := e.Execute(context.Background(), nil, handler)
	if result.Duration < 5*time.Millisecond {
		t.Errorf("Duration = %v, want >= 5ms", result.Duration)
	}
}
