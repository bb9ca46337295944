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

package main

import (
	"os"

	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"sigs.k8s.io/chartkit/cmd"
	"sigs.k8s.io/chartkit/debug"
)

func main() {
	flags := pflag.NewFlagSet("chartkit", pflag.ExitOnError)
	pflag.CommandLine = flags

	root := cmd.NewCmdChartkit(genericclioptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
	err := root.Execute()
	debug.Teardown()
	if err != nil {
		os.Exit(1)
	}
}
