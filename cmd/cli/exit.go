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

package cli

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	exitStrings = sets.NewString("q", "quit", "exit")

	exitQuotes = []string{
		"Every axis has two ends, but this session only had one.",
		"The ticks were nice; the numbers were nicer.",
		"Logarithmically speaking, that was an order of magnitude of fun.",
		"Remember: zero is not on a log axis, and neither are you anymore.",
		"Out of range.",
	}
)

// IsExit reports whether an interactive input line asks to leave.
func IsExit(input string) bool {
	return exitStrings.Has(strings.TrimSpace(input))
}

// Farewell prints a parting line.
func Farewell(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", exitQuotes[rand.Intn(len(exitQuotes))])
}
