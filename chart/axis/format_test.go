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

package axis_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/chartkit/chart/axis"
)

var _ = Describe("Numeric display", func() {
	table.DescribeTable("should format values for tick labels",
		func(value float64, expected string) {
			Expect(axis.NumericDisplay(value)).To(Equal(expected))
		},
		table.Entry("zero", 0.0, "0"),
		table.Entry("a plain integer", 1500.0, "1500"),
		table.Entry("a plain fraction", 0.25, "0.25"),
		table.Entry("a negative number, with an en dash", -2.5, "–2.5"),
		table.Entry("a value needing all significant figures", 3.14159265358979, "3.1415927"),
		table.Entry("a large value", 123456.0, "1.23456×10⁵"),
		table.Entry("a large value with a short mantissa", 1.23e8, "1.23×10⁸"),
		table.Entry("a power of ten", 1e8, "10⁸"),
		table.Entry("a negative power of ten", -1e6, "–10⁶"),
		table.Entry("the smallest value written as a power", 0.001, "10⁻³"),
		table.Entry("a tiny power of ten", 1e-5, "10⁻⁵"),
		table.Entry("a tiny value", 2.5e-7, "2.5×10⁻⁷"),
		table.Entry("not a number", math.NaN(), "NaN"),
		table.Entry("infinity", math.Inf(1), "∞"),
	)

	It("should round to the requested significant figures", func() {
		Expect(axis.FormatSignificant(3.14159265358979, 3)).To(Equal("3.14"))
		Expect(axis.FormatSignificant(2.0000001, 3)).To(Equal("2"))
	})

	It("should convert digits and signs to superscripts", func() {
		Expect(axis.Superscript("-12")).To(Equal("⁻¹²"))
		Expect(axis.Superscript("+3x")).To(Equal("⁺³x"))
	})
})
