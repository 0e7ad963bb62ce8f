package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ValentinKolb/pmkv/lib/db"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Kind
	}{
		{"Lookup", Lookupf("no project %q", "p1"), KindLookup},
		{"Auth", Authf("invalid credentials"), KindAuth},
		{"WrappedStoreError", fmt.Errorf("action: %w", Validationf("not approved")), KindValidation},
		{"KeyNotFound", fmt.Errorf("x: %w", db.ErrKeyNotFound), KindLookup},
		{"DuplicateName", db.ErrDuplicateName, KindValidation},
		{"InvalidValue", db.ErrInvalidValue, KindValidation},
		{"Plain", errors.New("boom"), KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
			if !IsKind(tc.err, tc.want) {
				t.Errorf("IsKind(%v, %s) returned false", tc.err, tc.want)
			}
		})
	}

	if IsKind(nil, KindInternal) {
		t.Errorf("nil must not match any kind")
	}
}

func TestErrorfWraps(t *testing.T) {
	err := Lookupf("load project: %w", db.ErrKeyNotFound)

	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("Expected wrapped sentinel to be reachable")
	}
	if !strings.HasPrefix(err.Error(), "LookupFailure: ") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil) != nil {
		t.Errorf("Expected nil")
	}
	err := Classify(fmt.Errorf("delete: %w", db.ErrKeyNotFound))
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindLookup {
		t.Errorf("Expected a lookup *Error, got %#v", err)
	}
	orig := Authf("denied")
	if Classify(orig) != error(orig) {
		t.Errorf("Expected *Error to be returned unchanged")
	}
}
