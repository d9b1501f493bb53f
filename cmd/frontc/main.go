// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command frontc is the CLI surface spec.md §6 describes: it is a
// consumed collaborator, specified only for contract stability (the
// phases it drives are this module's real deliverable), but it needs a
// real driver to exercise them end to end.
package main

import "os"

func main() {
	os.Exit(Main(os.Args[1:]))
}
