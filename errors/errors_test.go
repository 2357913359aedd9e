package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

var (
	errTestConflict = RegisterKind(ErrState, 9001, "test conflict")
	errTestNested   = RegisterKind(errTestConflict, 9002, "test nested conflict")
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrInvalidModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customErr)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"kind matches its special case": {
			a:      ErrState,
			b:      Wrap(errTestConflict, "boom"),
			wantIs: true,
		},
		"kind matches a nested special case": {
			a:      ErrState,
			b:      errTestNested,
			wantIs: true,
		},
		"special case does not match its kind": {
			a:      errTestConflict,
			b:      ErrState.New("other"),
			wantIs: false,
		},
		"special case does not match a sibling kind": {
			a:      ErrNotFound,
			b:      errTestConflict,
			wantIs: false,
		},
		"multi error is tested by its first error": {
			a:      ErrNotFound,
			b:      Append(ErrNotFound, ErrEmpty),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestSpecialCaseKeepsItsCode(t *testing.T) {
	code, log := ABCIInfo(Wrap(errTestNested, "ctx"), false)
	if code != 9002 {
		t.Fatalf("want 9002 code, got %d", code)
	}
	if log != "ctx: test nested conflict" {
		t.Fatalf("unexpected log: %q", log)
	}
	if errTestNested.Kind() != errTestConflict {
		t.Fatal("unexpected kind")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Register(ErrNotFound.code, "again")
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestRecover(t *testing.T) {
	err := func() (err error) {
		defer Recover(&err)
		panic("at the disco")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
	if Redact(err, false).Error() != "internal error" {
		t.Fatalf("panic message must be redacted: %q", Redact(err, false))
	}
}
