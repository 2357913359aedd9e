package assert

import (
	"testing"

	"github.com/iov-one/idm/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		Result   bool
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		WantErr  *errors.Error
		WantFail bool
	}{
		"single error of the wanted kind": {
			Err:      errors.Field("Role", errors.ErrInput, "unknown role"),
			Name:     "Role",
			WantErr:  errors.ErrInput,
			WantFail: false,
		},
		"nil asserts another field has no error": {
			Err:      errors.Field("Role", errors.ErrInput, "unknown role"),
			Name:     "Address",
			WantErr:  nil,
			WantFail: false,
		},
		"nil fails when the field has an error": {
			Err:      errors.Field("Role", errors.ErrInput, "unknown role"),
			Name:     "Role",
			WantErr:  nil,
			WantFail: true,
		},
		"two errors for one field fail even when of the same kind": {
			Err: errors.Append(
				errors.Field("Owners", errors.ErrDuplicate, "first"),
				errors.Field("Owners", errors.ErrDuplicate, "second"),
			),
			Name:     "Owners",
			WantErr:  errors.ErrDuplicate,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.WantErr)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	var nilMap map[string]int
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"untyped nil":     {Value: nil},
		"typed nil":       {Value: nilErr},
		"nil map":         {Value: nilMap},
		"error":           {Value: errors.ErrEmpty, WantFail: true},
		"zero int is set": {Value: 0, WantFail: true},
		"empty string":    {Value: "", WantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panicking function reported as failure")
	}
	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("quiet function not reported")
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
