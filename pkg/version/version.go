// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package version reports the build the binaries were made from.
package version

import (
	"fmt"
	"strings"
)

const unofficial = "v0.0.0-unofficial"

// build is populated at link time with -ldflags "-X", from git describe output:
// <tag>-<commits since tag>-g<hash>-<branch>.
var build string

// Build returns the raw build label.
func Build() string {
	return build
}

// Parse renders the build label as a version. Binaries built outside the
// release tooling report v0.0.0-unofficial.
func Parse() string {
	return parse(build)
}

func parse(label string) string {
	parts := strings.SplitN(label, "-", 4)
	if len(parts) != 4 || parts[0] == "" {
		return unofficial
	}
	tag, commits, hash, branch := parts[0], parts[1], strings.TrimPrefix(parts[2], "g"), parts[3]
	if !strings.HasPrefix(strings.ToLower(tag), "v") {
		tag = "v" + tag
	}
	switch {
	case commits != "0":
		return fmt.Sprintf("%s-%s (%s, +%s)", tag, branch, hash, commits)
	case branch != "main" && branch != "master":
		return tag + "-" + branch
	}
	return tag
}
