// Copyright 2025 the original author or authors.
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

package cli

import (
	"fmt"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// Progress tracks the number of tiles processed on stderr. A disabled
// Progress does nothing.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a progress bar over total tiles.
func NewProgress(total int, enabled bool) *Progress {
	if !enabled || total < 2 {
		return &Progress{}
	}

	bar := pb.New(total).SetWidth(79)
	bar.Output = os.Stderr
	bar.ShowSpeed = true
	bar.Start()

	return &Progress{bar: bar}
}

// Increment records one processed tile.
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops the bar and clears the terminal line of progress output.
func (p *Progress) Finish() {
	if p.bar == nil {
		return
	}

	// make sure newline is not printed by Finish()
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar
}
