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

package version

import (
	"runtime/debug"
	"time"
)

const (
	govcsTimeLayout = "2006-01-02T15:04:05Z"
	ourTimeLayout   = "20060102"
)

// These variables are set at build time through -ldflags "-X ...".
// 这些变量在构建时通过 -ldflags 设置。
var gitCommit, gitDate string

// VCSInfo represents the git repository state.
type VCSInfo struct {
	Commit string // head commit hash
	Date   string // commit time in YYYYMMDD format
	Dirty  bool
}

// VCS returns version control information of the current executable. Values
// injected by the linker take precedence over the Go build info.
// VCS 返回当前可执行文件的版本控制信息。
func VCS() (VCSInfo, bool) {
	if gitCommit != "" {
		return VCSInfo{Commit: gitCommit, Date: gitDate}, true
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Path == ourPath {
		return buildInfoVCS(buildInfo)
	}
	return VCSInfo{}, false
}

// buildInfoVCS returns VCS information of the build.
func buildInfoVCS(info *debug.BuildInfo) (s VCSInfo, ok bool) {
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			s.Commit = v.Value
		case "vcs.modified":
			s.Dirty = v.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(govcsTimeLayout, v.Value); err == nil {
				s.Date = t.Format(ourTimeLayout)
			}
		}
	}
	return s, s.Commit != "" && s.Date != ""
}
