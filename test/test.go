// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test collects small helper functions used throughout the rest of
// the module's test files, so that every package tests failure/success and
// equality conditions the same way.
package test

import (
	"math"
	"reflect"
	"testing"
)

// failed reports whether v represents a failure: a false bool, a non-nil
// error, or (for any other type) a non-zero value.
func failed(v any) bool {
	switch x := v.(type) {
	case bool:
		return !x
	case error:
		return x != nil
	case nil:
		return false
	default:
		rv := reflect.ValueOf(v)
		return !rv.IsZero()
	}
}

// ExpectFailure fails the test unless v represents a failure condition.
func ExpectFailure(t *testing.T, v any) {
	t.Helper()
	if !failed(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

// ExpectSuccess fails the test unless v represents a success condition.
func ExpectSuccess(t *testing.T, v any) {
	t.Helper()
	if failed(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectEquality fails the test unless a and b are equal.
func ExpectEquality(t *testing.T, a, b any) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v != %v", a, b)
	}
}

// ExpectInequality fails the test if a and b are equal.
func ExpectInequality(t *testing.T, a, b any) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v == %v", a, b)
	}
}

// ExpectApproximate fails the test unless a and b are within tolerance of
// one another.
func ExpectApproximate(t *testing.T, a, b float64, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}

// Equate is a terser alias for ExpectEquality, used by older test files in
// this module.
func Equate(t *testing.T, a, b any) {
	t.Helper()
	ExpectEquality(t, a, b)
}
