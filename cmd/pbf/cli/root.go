// Copyright 2017-25 the original author or authors.
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

// Package cli holds the shared cobra root command and terminal helpers
// (progress bars, *os.File flag values) used by the pbf command's
// subcommands.
package cli

import "github.com/spf13/cobra"

// RootCmd is the base command every subcommand package registers itself
// against from its own init().
var RootCmd = &cobra.Command{
	Use:   "pbf",
	Short: "Inspect OpenStreetMap PBF files",
	Long:  "pbf decodes OpenStreetMap .osm.pbf files and reports on their contents.",
}
