// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"strings"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/wizard"
	"github.com/gosimple/slug"
)

// Title is the guide's display name
const Title = "OP-TEE on Raspberry Pi 3"

// Step identifiers, in guide order
const (
	StepOverview      = "overview"
	StepPrerequisites = "prerequisites"
	StepSources       = "sources"
	StepBuild         = "build"
	StepFlash         = "flash"
	StepBoot          = "boot"
	StepVerify        = "verify"
)

// Release is the OP-TEE manifest branch the instructions are written against
const Release = "4.4.0"

type buildOptions struct {
	advanced bool
	links    config.ResourceLinks
}

// BuildSteps constructs the ordered step list. The advanced flag only adds
// sections; the set of step IDs is the same for every configuration.
func BuildSteps(settings config.GuideSettings) []wizard.Step {
	opts := buildOptions{
		advanced: settings.FlagEnabled(config.FlagAdvanced),
		links:    settings.Links,
	}

	return []wizard.Step{
		overviewStep(opts),
		prerequisitesStep(opts),
		sourcesStep(opts),
		buildStep(opts),
		flashStep(opts),
		bootStep(opts),
		verifyStep(opts),
	}
}

// StepIDs returns the identifiers of steps in order
func StepIDs(steps []wizard.Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}

// section builds a section with a slug ID. Bodies open with prose, so
// trimming never drops the indent of a leading code block.
func section(heading, body string) wizard.Section {
	return wizard.Section{
		ID:      slug.Make(heading),
		Heading: heading,
		Body:    strings.TrimSpace(body),
	}
}

// optionalLink returns a one-element link list, or nil when url is unset
func optionalLink(label, url string) []wizard.Link {
	if url == "" {
		return nil
	}
	return []wizard.Link{{Label: label, URL: url}}
}

func overviewStep(opts buildOptions) wizard.Step {
	return wizard.Step{
		ID:          StepOverview,
		Title:       "Overview",
		Description: "What you will build and how the boot chain fits together.",
		Badge:       "Start here",
		Sections: []wizard.Section{
			section("What you will build", `
A bootable SD card image for the Raspberry Pi 3 Model B or B+ that runs
OP-TEE OS in the ARM TrustZone secure world next to a Buildroot Linux
system in the normal world.

Every step is performed by you on your own machine. This guide only tells
you what to run and what to expect.`),
			section("Boot chain", `
1. The VideoCore firmware loads the ARM Trusted Firmware image.
2. TF-A (BL31) sets up the secure monitor.
3. OP-TEE OS (BL32) initialises the secure world.
4. U-Boot (BL33) loads the Linux kernel and device tree.
5. Linux starts tee-supplicant and exposes /dev/tee0.`),
			section("Security caveat", `
The Raspberry Pi 3 has no hardware memory firewall between secure and
normal world. This image is for development and evaluation only. Do not
keep real secrets on it.`),
		},
		Tips: []string{
			"Read the whole guide once before starting; the flash step erases the target card.",
			"Mark steps complete as you go so you can resume where you left off in this session.",
		},
		Links: optionalLink("OP-TEE documentation", opts.links.Docs),
	}
}

func prerequisitesStep(opts buildOptions) wizard.Step {
	sections := []wizard.Section{
		section("Host system", `
Use a 64-bit x86 Linux host. Ubuntu 22.04 LTS is the reference
distribution. Reserve at least 30 GB of free disk space and 8 GB of RAM.`),
		section("Install packages", `
Install the build dependencies from the Ubuntu archive:

    sudo apt-get update
    sudo apt-get install -y adb acpica-tools autoconf automake bc bison \
        build-essential ccache cpio cscope curl device-tree-compiler e2tools \
        expect fastboot flex ftp-upload gdisk git libattr1-dev libcap-ng-dev \
        libfdt-dev libftdi-dev libglib2.0-dev libgmp3-dev libhidapi-dev \
        libmpc-dev libncurses5-dev libpixman-1-dev libslirp-dev libssl-dev \
        libtool make mtools netcat ninja-build python3-cryptography \
        python3-pip python3-pyelftools python3-serial python-is-python3 \
        rsync swig unzip uuid-dev wget xdg-utils xterm xz-utils zlib1g-dev`),
		section("Install repo", `
The sources are managed with Google's repo tool:

    mkdir -p ~/bin
    curl https://storage.googleapis.com/git-repo-downloads/repo > ~/bin/repo
    chmod a+x ~/bin/repo
    export PATH=~/bin:$PATH`),
		section("Check tool versions", requirementsTable(HostRequirements)),
	}

	if opts.advanced {
		sections = append(sections, section("Speed up rebuilds with ccache", `
The build honours ccache when it is on PATH. Give it room:

    ccache --max-size=20G
    export CCACHE_DIR=$HOME/.ccache`))
	}

	return wizard.Step{
		ID:          StepPrerequisites,
		Title:       "Prepare the host",
		Description: "Install the packages and tools the build expects.",
		Badge:       "~15 min",
		Sections:    sections,
		Tips: []string{
			"Building inside a container works, but bind-mount a host directory so the sources survive.",
		},
	}
}

func sourcesStep(opts buildOptions) wizard.Step {
	sections := []wizard.Section{
		section("Initialise the manifest", `
Create a work directory and point repo at the rpi3 manifest:

    mkdir -p ~/optee-rpi3 && cd ~/optee-rpi3
    repo init -u https://github.com/OP-TEE/manifest.git -m rpi3.xml -b `+Release),
		section("Sync the projects", `
Download every project the manifest lists:

    repo sync -j4 --no-clone-bundle

The first sync downloads several gigabytes. Re-run the command if it stops
on a network error; it resumes where it left off.`),
	}

	if opts.advanced {
		sections = append(sections, section("Use a local mirror", `
When building for several boards, keep one mirror and point repo at it:

    repo init -u https://github.com/OP-TEE/manifest.git --mirror
    repo sync -j8
    repo init -u https://github.com/OP-TEE/manifest.git -m rpi3.xml \
        --reference=/path/to/mirror`))
	}

	return wizard.Step{
		ID:          StepSources,
		Title:       "Fetch the sources",
		Description: "Check out every project the rpi3 manifest pins.",
		Badge:       "~20 min",
		Sections:    sections,
		Tips: []string{
			"Stay on one release branch for the whole build; mixing branches breaks the secure/normal world ABI.",
		},
		Links: optionalLink("Build manifest repository", opts.links.Source),
	}
}

func buildStep(opts buildOptions) wizard.Step {
	sections := []wizard.Section{
		section("Fetch the toolchains", `
Download the AArch32 and AArch64 cross compilers:

    cd ~/optee-rpi3/build
    make -j2 toolchains`),
		section("Build the image", `
Build everything from the build directory:

    make -j$(nproc)

This builds TF-A, OP-TEE OS, the client library, U-Boot, the Linux kernel
and a Buildroot root filesystem with xtest preinstalled.`),
		section("Locate the output", `
Check that the build produced the boot files and root filesystem:

    ls ../out/boot
    ls ../out-br/images/rootfs.cpio.gz

The boot directory holds the firmware, armstub and kernel files for the
FAT partition. The cpio archive is the root filesystem.`),
	}

	if opts.advanced {
		sections = append(sections,
			section("Debug builds", `
Raise the secure world log level and keep symbols:

    make -j$(nproc) CFG_TEE_CORE_LOG_LEVEL=4 CFG_TEE_CORE_DEBUG=y DEBUG=1`),
			section("Reproducible builds", `
Export a fixed timestamp before building so two runs produce identical
images:

    export SOURCE_DATE_EPOCH=$(git -C ../optee_os log -1 --format=%ct)`),
		)
	}

	return wizard.Step{
		ID:          StepBuild,
		Title:       "Build the image",
		Description: "Compile the secure and normal world components.",
		Badge:       "~45 min",
		Sections:    sections,
		Tips: []string{
			"If the build fails halfway, re-run make; it only rebuilds what changed.",
			"Run make help to list the individual targets.",
		},
	}
}

func flashStep(opts buildOptions) wizard.Step {
	return wizard.Step{
		ID:          StepFlash,
		Title:       "Flash the SD card",
		Description: "Partition a micro SD card and copy the image onto it.",
		Badge:       "Erases the card",
		Sections: []wizard.Section{
			section("Identify the card", `
Insert the card and find its device node. Double-check the size column;
the next steps destroy everything on the chosen device.

    lsblk -o NAME,SIZE,MODEL,TRAN`),
			section("Partition the card", `
Print the board-specific instructions from the build tree and follow them:

    make img-help

They create a 64 MB FAT32 boot partition and an ext4 root partition.`),
			section("Copy the boot files", `
Format the first partition and copy the boot directory onto it:

    sudo mkfs.vfat -F16 -n BOOT /dev/sdX1
    sudo mount /dev/sdX1 /media/boot
    sudo cp -r ../out/boot/* /media/boot/
    sudo umount /media/boot`),
			section("Extract the root filesystem", `
Format the second partition and unpack the cpio archive into it:

    sudo mkfs.ext4 -L rootfs /dev/sdX2
    sudo mount /dev/sdX2 /media/rootfs
    cd /media/rootfs
    gunzip -cd ~/optee-rpi3/out-br/images/rootfs.cpio.gz | sudo cpio -idmv
    cd - && sudo umount /media/rootfs`),
		},
		Tips: []string{
			"Replace /dev/sdX with the device you identified; never guess.",
			"Run sync before removing the card.",
		},
		Links: optionalLink("Raspberry Pi 3 hardware documentation", opts.links.Hardware),
	}
}

func bootStep(opts buildOptions) wizard.Step {
	sections := []wizard.Section{
		section("Wire the serial console", `
Use a 3.3 V USB to UART adapter:

| Adapter | Pi header pin |
|---------|---------------|
| GND | 6 |
| RX | 8 (GPIO14, TX) |
| TX | 10 (GPIO15, RX) |

Leave the adapter's power line disconnected.`),
		section("Open the console", `
Attach a terminal to the adapter before powering the board:

    picocom -b 115200 /dev/ttyUSB0

Power the board. TF-A, OP-TEE and U-Boot banners appear before Linux.`),
		section("Log in", `
At the buildroot prompt log in as root. No password is set.`),
	}

	if opts.advanced {
		sections = append(sections, section("Attach a JTAG debugger", `
Enable JTAG on the GPIO header by adding this line to config.txt on the
boot partition:

    enable_jtag_gpio=1

Then connect OpenOCD with the raspberrypi3 target configuration and attach
gdb to the secure world with the symbols from out/optee_os.`))
	}

	return wizard.Step{
		ID:          StepBoot,
		Title:       "Boot and connect",
		Description: "Power the board and reach a shell over the serial console.",
		Sections:    sections,
		Tips: []string{
			"No output at all usually means RX and TX are swapped.",
			"Garbled output means the baud rate is wrong.",
		},
	}
}

func verifyStep(opts buildOptions) wizard.Step {
	sections := []wizard.Section{
		section("Check the TEE driver", `
Confirm the kernel found the secure world:

    ls /dev/tee*
    dmesg | grep -i optee

You should see /dev/tee0 and /dev/teepriv0, and a line reporting the OP-TEE
revision.`),
		section("Run the test suite", `
Run the OP-TEE regression suite:

    xtest

The run takes several minutes and ends with a summary. Every test should
pass and the summary should report 0 failed.`),
		section("Run an example trusted application", `
Run the hello world example:

    optee_example_hello_world

The TA increments a value inside the secure world and prints it.`),
	}

	if opts.advanced {
		sections = append(sections, section("GlobalPlatform compliance suite", `
If you added the GlobalPlatform TEE test suite to the build, run it with:

    xtest -t gp

Expect a much longer run than the regression suite.`))
	}

	return wizard.Step{
		ID:          StepVerify,
		Title:       "Verify the TEE",
		Description: "Confirm the secure world is up and passes its tests.",
		Badge:       "Final check",
		Sections:    sections,
		Tips: []string{
			"If tee-supplicant is not running, start it with tee-supplicant -d and try again.",
		},
		Links: optionalLink("Support and issue tracker", opts.links.Support),
	}
}
