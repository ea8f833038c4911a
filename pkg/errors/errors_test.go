package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestPagerErrorString(t *testing.T) {
	err := &PagerError{
		Op:   "pageview.SetViewControllers",
		Kind: KindPrecondition,
		Err:  ErrDuplicateController,
	}
	want := "pageview.SetViewControllers [precondition]: view controller appears more than once"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, ErrDuplicateController) {
		t.Error("expected PagerError to unwrap to ErrDuplicateController")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPrecondition, "precondition"},
		{KindHost, "host"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "pageview.notify"
	if got, want := err.Error(), "panic in pageview.notify: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *PagerError
	old := SetHandler(&testHandler{onError: func(err *PagerError) { captured = err }})
	defer SetHandler(old)

	Report(&PagerError{Op: "test.op", Kind: KindHost, Err: ErrLayoutInProgress})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestPrecondition(t *testing.T) {
	var captured *PagerError
	old := SetHandler(&testHandler{onError: func(err *PagerError) { captured = err }})
	defer SetHandler(old)

	Precondition("pageview.SetHeader", ErrLayoutInProgress)

	if captured == nil {
		t.Fatal("expected precondition to be reported")
	}
	if captured.Kind != KindPrecondition {
		t.Errorf("Kind = %v, want precondition", captured.Kind)
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	old := SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(old)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := SetHandler(nil)
	defer SetHandler(old)
	if _, ok := getHandler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install LogHandler, got %T", getHandler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&PagerError{Op: "pageview.SetHeader", Kind: KindPrecondition, Err: ErrLayoutInProgress})
	if got := buf.String(); !strings.Contains(got, "[parallaxpager error] pageview.SetHeader: decoration changed") {
		t.Errorf("unexpected log line %q", got)
	}

	buf.Reset()
	h.Verbose = true
	h.HandlePanic(&PanicError{Op: "pageview.notify", Value: "boom", StackTrace: "frame"})
	got := buf.String()
	if !strings.Contains(got, "[parallaxpager panic] pageview.notify: boom") || !strings.Contains(got, "Stack trace:") {
		t.Errorf("unexpected verbose panic output %q", got)
	}
}

type testHandler struct {
	onError func(*PagerError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *PagerError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
