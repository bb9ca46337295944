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

package raster

import (
	"strings"
)

var plainDigits = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
	'⁺': '+', '⁻': '-',
}

// Plain rewrites tick labels into the ASCII the bitmap font has glyphs for:
// en dash minus signs become hyphens and powers of ten use e notation
// ("2.5×10⁻⁷" becomes "2.5e-7", "10³" becomes "1e3").
func Plain(s string) string {
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "∞", "inf")

	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '×' && strings.HasPrefix(string(runes[i+1:]), "10"):
			sb.WriteRune('e')
			i += 2
		case r == '1' && i+2 < len(runes) && runes[i+1] == '0' && isSuperscript(runes[i+2]) && (i == 0 || runes[i-1] == '-'):
			sb.WriteString("1e")
			i++
		default:
			if d, ok := plainDigits[r]; ok {
				sb.WriteRune(d)
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isSuperscript(r rune) bool {
	_, ok := plainDigits[r]
	return ok
}
