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

package debug

var (
	debugLogger = NewDebugLogger("debug.log")
	errorLogger = NewDebugLogger("error.log")
)

func Debugf(format string, args ...interface{}) {
	debugLogger.Printf(format, args...)
}

func Debugln(args ...interface{}) {
	debugLogger.Println(args...)
}

func Errorf(format string, args ...interface{}) {
	errorLogger.Printf(format, args...)
}

func Errorln(args ...interface{}) {
	errorLogger.Println(args...)
}
