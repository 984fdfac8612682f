// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Requirement is a host tool the build expects, with the oldest version
// known to work
type Requirement struct {
	Tool    string
	Minimum *version.Version
	Check   string // command that prints the installed version
}

func requirement(tool, minimum, check string) Requirement {
	return Requirement{
		Tool:    tool,
		Minimum: version.Must(version.NewVersion(minimum)),
		Check:   check,
	}
}

// HostRequirements lists the tools checked on the prerequisites step
var HostRequirements = []Requirement{
	requirement("git", "2.25", "git --version"),
	requirement("repo", "2.32", "repo version"),
	requirement("GNU Make", "4.2", "make --version"),
	requirement("Python", "3.8", "python3 --version"),
	requirement("Device tree compiler", "1.5.0", "dtc --version"),
}

// Constraint returns the requirement as a version constraint string
func (r Requirement) Constraint() string {
	return ">= " + r.Minimum.String()
}

// requirementsTable renders requirements as a markdown table
func requirementsTable(reqs []Requirement) string {
	var b strings.Builder
	b.WriteString("| Tool | Version | Check with |\n")
	b.WriteString("|------|---------|------------|\n")
	for _, r := range reqs {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Tool, r.Constraint(), r.Check)
	}
	return b.String()
}
