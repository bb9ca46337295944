/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package axis

import (
	"math"
	"strconv"
	"strings"
)

// DefaultSignificantFigures is the precision tick labels are shown to.
const DefaultSignificantFigures = 8

const minusSign = "–"

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻',
}

// Superscript converts the digits and signs in s to their superscript forms,
// leaving anything else alone.
func Superscript(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if sup, ok := superscripts[r]; ok {
			sb.WriteRune(sup)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// NumericDisplay formats a tick value for display, to
// DefaultSignificantFigures significant figures.
func NumericDisplay(x float64) string {
	return FormatSignificant(x, DefaultSignificantFigures)
}

// FormatSignificant formats x with the fewest decimal places that keep it
// accurate to the given number of significant figures.  Values between 1e-3
// and 1e5 in magnitude are written out in full; others use a
// "mantissa×10ⁿ" form (just "10ⁿ" for a unit mantissa).  Minus signs are
// en dashes.
func FormatSignificant(x float64, sigFigs int) string {
	switch {
	case x == 0:
		return "0"
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return minusSign + "∞"
	}
	if sigFigs < 1 {
		sigFigs = 1
	}
	tolerance := math.Pow(10, -float64(sigFigs))

	abs := math.Abs(x)
	if abs > 1e-3 && abs < 1e5 {
		// enough decimals to reach the requested significant figures from
		// the leading digit
		maxDecimals := sigFigs - int(math.Floor(math.Log10(abs))) - 1
		if maxDecimals < 0 {
			maxDecimals = 0
		}
		decimals := minimalDecimals(x, maxDecimals, tolerance)
		return withMinus(strconv.FormatFloat(x, 'f', decimals, 64))
	}

	exponent := math.Floor(math.Log10(abs))
	mantissa := x / math.Pow(10, exponent)
	decimals := minimalDecimals(mantissa, sigFigs-1, tolerance)

	// let strconv renormalize, in case the mantissa rounds up to 10
	formatted := strconv.FormatFloat(x, 'e', decimals, 64)
	idx := strings.IndexByte(formatted, 'e')
	mant, exp := formatted[:idx], formatted[idx+1:]
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
	}
	expVal, err := strconv.Atoi(exp)
	if err != nil {
		return withMinus(formatted)
	}

	power := "10" + Superscript(strconv.Itoa(expVal))
	switch mant {
	case "1":
		return power
	case "-1":
		return minusSign + power
	}
	return withMinus(mant) + "×" + power
}

// minimalDecimals finds the fewest decimal places (up to max) at which x
// rounds to within tolerance of itself, relatively.
func minimalDecimals(x float64, max int, tolerance float64) int {
	for d := 0; d < max; d++ {
		scale := math.Pow(10, float64(d))
		if math.Abs(math.Round(x*scale)/scale-x) <= math.Abs(x)*tolerance {
			return d
		}
	}
	return max
}

func withMinus(s string) string {
	return strings.ReplaceAll(s, "-", minusSign)
}
