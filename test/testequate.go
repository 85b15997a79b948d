// This file is part of probe-rs.
//
// probe-rs is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// probe-rs is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with probe-rs.  If not, see <https://www.gnu.org/licenses/>.

// Package test is the house testing-helper package used throughout this
// module in preference to a third-party assertion library. It is small
// and deliberately un-clever: every helper takes the *testing.T and marks
// the test failed with t.Errorf rather than returning an error a caller
// might forget to check; the test carries on after a failed helper.
package test

import (
	"math"
	"reflect"
	"testing"
)

// Equate fails the test unless got and want compare equal, using
// reflect.DeepEqual. It reports the result so callers can gate further,
// dependent assertions behind it.
func Equate(t *testing.T, got, want interface{}) bool {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("not equal: got %#v, want %#v", got, want)
		return false
	}
	return true
}

// ExpectEquality is Equate with failure semantics named for readability
// at call sites that don't need the bool result.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	Equate(t, got, want)
}

// ExpectInequality fails the test if got and want compare equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("unexpectedly equal: got %#v, want something other than %#v", got, want)
	}
}

// ExpectApproximate fails the test unless got is within tolerance of want,
// where tolerance is a fraction of want (0.1 allows a difference of up to
// 10% of want).
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > math.Abs(want)*tolerance {
		t.Errorf("not approximately equal: got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

// isFailure reports whether v represents a failed result: false for a
// bool, a non-nil error for an error, and false (not a failure) for
// anything else including nil.
func isFailure(v interface{}) bool {
	switch r := v.(type) {
	case bool:
		return !r
	case error:
		return r != nil
	case nil:
		return false
	}
	return false
}

// ExpectFailure fails the test unless v represents a failed result (a
// bool that is false, or a non-nil error). It reports whether the
// expectation held, so callers can gate further assertions that are only
// meaningful once failure is confirmed (e.g. inspecting an error's
// message).
func ExpectFailure(t *testing.T, v interface{}) bool {
	t.Helper()
	if !isFailure(v) {
		t.Errorf("expected failure, got %#v", v)
		return false
	}
	return true
}

// ExpectSuccess fails the test unless v represents a successful result (a
// bool that is true, a nil error, or nil).
func ExpectSuccess(t *testing.T, v interface{}) bool {
	t.Helper()
	if isFailure(v) {
		t.Errorf("expected success, got %#v", v)
		return false
	}
	return true
}

// ExpectedFailure is ExpectFailure under the name some call sites use.
func ExpectedFailure(t *testing.T, v interface{}) bool {
	t.Helper()
	return ExpectFailure(t, v)
}

// ExpectedSuccess is ExpectSuccess under the name some call sites use.
func ExpectedSuccess(t *testing.T, v interface{}) bool {
	t.Helper()
	return ExpectSuccess(t, v)
}
