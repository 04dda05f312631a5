package io

import (
	"path/filepath"
	"sort"
	"strings"
)

// FindSnapshots returns every file in dir which matches the glob pattern,
// in numeric order (see SortNumeric).
func FindSnapshots(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil { return nil, err }
	SortNumeric(files)
	return files, nil
}

// DigitKey returns the digits in the base name of file, concatenated.
// Other characters are dropped and do not separate numbers, so
// "run2_frame10.csv" has the key "210".
func DigitKey(file string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' { return r }
		return -1
	}, filepath.Base(file))
}

// HasDigits returns true if the base name of file contains a digit.
func HasDigits(file string) bool {
	return DigitKey(file) != ""
}

// SortNumeric sorts files by the integer value of their DigitKey. Keys
// are compared as arbitrarily large integers. Files without any digits
// sort before all others, and ties are broken by the full path.
func SortNumeric(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		ki, kj := DigitKey(files[i]), DigitKey(files[j])
		if c := compareDigits(ki, kj); c != 0 { return c < 0 }
		return files[i] < files[j]
	})
}

// compareDigits compares two non-negative decimal integers given as digit
// strings. The empty string is smaller than every number.
func compareDigits(a, b string) int {
	if (a == "") != (b == "") {
		if a == "" { return -1 }
		return +1
	}

	a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return +1
	case a < b:
		return -1
	case a > b:
		return +1
	}
	return 0
}
