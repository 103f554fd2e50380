// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package version implements reading of build version information.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sunyihoo/go-ethabi/version"
)

const ourPath = "github.com/sunyihoo/go-ethabi" // Path to our module

// Family holds the textual version string for major.minor
var Family = fmt.Sprintf("%d.%d", version.Major, version.Minor)

// Semantic holds the textual version string for major.minor.patch.
var Semantic = fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch)

// WithMeta holds the textual version string including the metadata.
var WithMeta = func() string {
	v := Semantic
	if version.Meta != "" {
		v += "-" + version.Meta
	}
	return v
}()

// WithCommit appends the short commit hash and, for unstable builds, the
// commit date to the version string.
// WithCommit 在版本字符串后附加提交哈希，非稳定版本还会附加提交日期。
func WithCommit(gitCommit, gitDate string) string {
	vsn := WithMeta
	if len(gitCommit) >= 8 {
		vsn += "-" + gitCommit[:8]
	}
	if (version.Meta != "stable") && (gitDate != "") {
		vsn += "-" + gitDate
	}
	return vsn
}

// Info returns the multi line description printed by the version command.
func Info() string {
	var b strings.Builder
	fmt.Fprintln(&b, "Version:", WithMeta)
	if vcs, ok := VCS(); ok {
		fmt.Fprintln(&b, "Git Commit:", vcs.Commit)
		fmt.Fprintln(&b, "Git Commit Date:", vcs.Date)
		if vcs.Dirty {
			fmt.Fprintln(&b, "Git Tree: dirty")
		}
	}
	fmt.Fprintln(&b, "Architecture:", runtime.GOARCH)
	fmt.Fprintln(&b, "Go Version:", runtime.Version())
	fmt.Fprintln(&b, "Operating System:", runtime.GOOS)
	return b.String()
}
