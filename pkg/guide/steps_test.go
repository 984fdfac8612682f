// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"math"
	"strings"
	"testing"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedIDs = []string{
	StepOverview, StepPrerequisites, StepSources, StepBuild, StepFlash, StepBoot, StepVerify,
}

func advancedSettings() config.GuideSettings {
	return config.GuideSettings{
		FeatureFlags:       config.FeatureFlags{config.FlagAdvanced: true},
		ExperimentsEnabled: true,
	}
}

func sectionIDs(steps []wizard.Step) map[string]bool {
	ids := map[string]bool{}
	for _, s := range steps {
		for _, sec := range s.Sections {
			ids[sec.ID] = true
		}
	}
	return ids
}

func TestBuildSteps_Order(t *testing.T) {
	steps := BuildSteps(config.GuideSettings{})
	assert.Equal(t, expectedIDs, StepIDs(steps))
}

func TestBuildSteps_IDsStableAcrossFlags(t *testing.T) {
	plain := BuildSteps(config.GuideSettings{})
	advanced := BuildSteps(advancedSettings())

	assert.Equal(t, StepIDs(plain), StepIDs(advanced))
}

func TestBuildSteps_EveryStepHasContent(t *testing.T) {
	for _, s := range BuildSteps(advancedSettings()) {
		assert.NotEmpty(t, s.Title, s.ID)
		assert.NotEmpty(t, s.Description, s.ID)
		assert.NotEmpty(t, s.Sections, s.ID)

		seen := map[string]bool{}
		for _, sec := range s.Sections {
			assert.NotEmpty(t, sec.ID, "%s: section %q has no slug", s.ID, sec.Heading)
			assert.False(t, seen[sec.ID], "%s: duplicate section slug %q", s.ID, sec.ID)
			seen[sec.ID] = true
		}
	}
}

func TestBuildSteps_AdvancedSections(t *testing.T) {
	advancedOnly := []string{
		"speed-up-rebuilds-with-ccache",
		"use-a-local-mirror",
		"debug-builds",
		"reproducible-builds",
		"attach-a-jtag-debugger",
		"globalplatform-compliance-suite",
	}

	plain := sectionIDs(BuildSteps(config.GuideSettings{}))
	advanced := sectionIDs(BuildSteps(advancedSettings()))

	for _, id := range advancedOnly {
		assert.False(t, plain[id], "%s should be hidden without the advanced flag", id)
		assert.True(t, advanced[id], "%s should be shown with the advanced flag", id)
	}
}

func TestBuildSteps_AdvancedFlagNeedsExperiments(t *testing.T) {
	s := config.GuideSettings{
		FeatureFlags:       config.FeatureFlags{config.FlagAdvanced: true},
		ExperimentsEnabled: false,
	}
	assert.Equal(t,
		sectionIDs(BuildSteps(config.GuideSettings{})),
		sectionIDs(BuildSteps(s)),
	)
}

func TestBuildSteps_Links(t *testing.T) {
	settings := config.NewGuideSettings(nil, false, config.ResourceLinks{
		Docs:     "https://optee.readthedocs.io/en/latest/",
		Source:   "https://github.com/OP-TEE/build",
		Hardware: "https://www.raspberrypi.com/documentation/",
		Support:  "https://github.com/OP-TEE/optee_os/issues",
	})
	steps := BuildSteps(settings)

	want := map[string]string{
		StepOverview: "https://optee.readthedocs.io/en/latest/",
		StepSources:  "https://github.com/OP-TEE/build",
		StepFlash:    "https://www.raspberrypi.com/documentation/",
		StepVerify:   "https://github.com/OP-TEE/optee_os/issues",
	}
	for id, url := range want {
		step, ok := Find(steps, id)
		require.True(t, ok, id)
		require.Len(t, step.Links, 1, id)
		assert.Equal(t, url, step.Links[0].URL)
		assert.NotEmpty(t, step.Links[0].Label)
	}
}

func TestBuildSteps_InvalidLinkOmitted(t *testing.T) {
	settings := config.NewGuideSettings(nil, false, config.ResourceLinks{
		Docs: "optee.readthedocs.io",
	})
	steps := BuildSteps(settings)

	overview, ok := Find(steps, StepOverview)
	require.True(t, ok)
	assert.Empty(t, overview.Links)

	for _, s := range steps {
		assert.Empty(t, s.Links, s.ID)
	}
}

func TestScenario_DefaultStartsAtOverview(t *testing.T) {
	settings := config.NewGuideSettings("", false, config.ResourceLinks{})
	c := wizard.NewController(BuildSteps(settings))

	assert.Equal(t, StepOverview, c.ActiveID())
	assert.Equal(t, 0, c.Progress())
}

func TestScenario_ToggleFirstStep(t *testing.T) {
	c := wizard.NewController(BuildSteps(config.GuideSettings{}))
	n := c.Len()

	c.ToggleComplete()
	assert.Equal(t, int(math.Round(100/float64(n))), c.Progress())

	c.ToggleComplete()
	assert.Equal(t, 0, c.Progress())
}

func TestScenario_AllComplete(t *testing.T) {
	c := wizard.NewController(BuildSteps(config.GuideSettings{}))
	for {
		c.ToggleComplete()
		if !c.GoNext() {
			break
		}
	}
	assert.Equal(t, 100, c.Progress())
}

func TestScenario_FlagChangeKeepsSelection(t *testing.T) {
	c := wizard.NewController(BuildSteps(config.GuideSettings{}))
	require.True(t, c.SelectStep(StepBuild))
	c.ToggleComplete()

	c.Reconcile(BuildSteps(advancedSettings()))

	assert.Equal(t, StepBuild, c.ActiveID())
	assert.True(t, c.IsComplete(StepBuild))
	step, _ := c.Active()
	_, ok := FindSection(step, "debug-builds")
	assert.True(t, ok)
}

func TestRequirements(t *testing.T) {
	require.NotEmpty(t, HostRequirements)
	for _, r := range HostRequirements {
		assert.NotNil(t, r.Minimum, r.Tool)
		assert.True(t, strings.HasPrefix(r.Constraint(), ">= "), r.Tool)
	}

	table := requirementsTable(HostRequirements)
	assert.Contains(t, table, "| git | >= 2.25.0 |")
}

func TestStepMarkdown(t *testing.T) {
	steps := BuildSteps(config.NewGuideSettings(nil, false, config.ResourceLinks{
		Support: "https://github.com/OP-TEE/optee_os/issues",
	}))
	verify, ok := Find(steps, StepVerify)
	require.True(t, ok)

	md := StepMarkdown(verify)
	assert.Contains(t, md, "## Run the test suite")
	assert.Contains(t, md, "## Tips")
	assert.Contains(t, md, "[Support and issue tracker](https://github.com/OP-TEE/optee_os/issues)")
}

func TestDocumentMarkdown(t *testing.T) {
	md := DocumentMarkdown(BuildSteps(config.GuideSettings{}))

	assert.True(t, strings.HasPrefix(md, "# "+Title))
	assert.Contains(t, md, "# 1. Overview (Start here)")
	assert.Contains(t, md, "# 7. Verify the TEE (Final check)")
	assert.NotContains(t, md, "## Resources")
}

func TestFind_Missing(t *testing.T) {
	_, ok := Find(BuildSteps(config.GuideSettings{}), "nope")
	assert.False(t, ok)
}

func TestBuildSteps_SectionBodiesTrimmed(t *testing.T) {
	for _, s := range BuildSteps(advancedSettings()) {
		for _, sec := range s.Sections {
			assert.Equal(t, strings.TrimSpace(sec.Body), sec.Body, "%s/%s", s.ID, sec.ID)
			assert.False(t, strings.HasPrefix(sec.Body, " "), "%s/%s opens with an indented line", s.ID, sec.ID)
		}
	}
}

func TestStepMarkdown_KeepsCodeBlocks(t *testing.T) {
	pre, ok := Find(BuildSteps(config.GuideSettings{}), StepPrerequisites)
	require.True(t, ok)

	md := StepMarkdown(pre)
	assert.Contains(t, md, "## Install packages\n\nInstall the build dependencies from the Ubuntu archive:\n\n    sudo apt-get update\n")
	assert.Contains(t, md, "    chmod a+x ~/bin/repo\n    export PATH=~/bin:$PATH\n\n## Check tool versions")
}
