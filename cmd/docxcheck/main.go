// Copyright 2026 Suffolk University Legal Innovation and Technology Lab
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

// Package main provides the CLI entrypoint for the DOCX template checker.
//
// The checker scans DOCX files for template expression problems: fatal
// syntax errors fail the run, unknown filters are reported as warnings.
// Results land on stdout plus optional HTML and Markdown artifacts for CI
// review.
package main

import (
	"fmt"
	"os"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/spf13/cobra"
)

// rootCmd is the top-level command; all behavior lives in subcommands.
var rootCmd = &cobra.Command{
	Use:   "docxcheck",
	Short: "Validate template expressions in DOCX files",
	Long: `docxcheck validates the Jinja template expressions embedded in DOCX
files without rendering them against real data.

Missing variables never fail validation; grammar errors do, and filters
that are not known to the rendering environment are surfaced as
warnings so template authors can double-check their spelling.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
