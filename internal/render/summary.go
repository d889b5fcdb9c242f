package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/deploymenttheory/go-drivecap/internal/device"
	"github.com/deploymenttheory/go-drivecap/internal/validation"
)

// Size formats a byte count in all three conventions users care about:
// exact, IEC, and SI.
func Size(n int64) string {
	return fmt.Sprintf("%d bytes (%s, %s)", n, humanize.IBytes(uint64(n)), humanize.Bytes(uint64(n)))
}

// Summary renders the run outcome: validated size, status tallies, and
// any restoration failures.
func Summary(report *validation.Report, noColor bool) string {
	var b strings.Builder

	counts := report.CountByStatus()
	if report.ReadOnly {
		fmt.Fprintf(&b, "Read-only scan: %d/%d blocks readable\n",
			counts[validation.StatusReadOK], len(report.Blocks))
		if n := counts[validation.StatusIOError]; n > 0 {
			b.WriteString(styleFor(warnStyle, noColor).Render(
				fmt.Sprintf("%d blocks failed to read", n)))
			b.WriteByte('\n')
		}
		b.WriteString("Note: a read-only scan proves reachability only; it cannot detect\n")
		b.WriteString("non-durable storage. Run a full write test for a capacity verdict.\n")
		return b.String()
	}

	label := styleFor(boldStyle, noColor).Render("Validated drive size")
	fmt.Fprintf(&b, "%s: %s\n", label, Size(report.ValidatedSize))
	if report.ValidatedSize < report.DriveSize {
		b.WriteString(styleFor(badStyle, noColor).Render(fmt.Sprintf(
			"Drive advertises %s but only %s validated from the start of the address space.",
			humanize.IBytes(uint64(report.DriveSize)), humanize.IBytes(uint64(report.ValidatedSize)))))
		b.WriteByte('\n')
	} else {
		b.WriteString(styleFor(okStyle, noColor).Render("All sampled blocks validated."))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Blocks: %d validated, %d no-storage, %d I/O errors (of %d)\n",
		counts[validation.StatusValidated],
		counts[validation.StatusNoStorage],
		counts[validation.StatusIOError],
		len(report.Blocks))

	if len(report.RestoreFailures) > 0 {
		b.WriteString(styleFor(badStyle, noColor).Render(fmt.Sprintf(
			"WARNING: %d blocks could not be restored; their content is now unknown:", len(report.RestoreFailures))))
		b.WriteByte('\n')
		for _, f := range report.RestoreFailures {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	return b.String()
}

// Stats renders one phase's I/O timing line. Returns "" for phases that
// did not run.
func Stats(name string, s *validation.IOStats) string {
	if s == nil || s.Count() == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %d ops, avg %.3f ms, stddev %.3f ms, CV %.3f, min %.3f ms, max %.3f ms\n",
		name, s.Count(),
		float64(s.Avg().Nanoseconds())/1e6, s.StdDev(), s.CV(),
		float64(s.Min().Nanoseconds())/1e6, float64(s.Max().Nanoseconds())/1e6)
}

// DeviceInfo renders the probed device identity, skipping empty fields.
func DeviceInfo(info *device.Info, noColor bool) string {
	var b strings.Builder
	b.WriteString(styleFor(boldStyle, noColor).Render("Device information:"))
	b.WriteByte('\n')
	writeIfSet(&b, "Vendor", info.Vendor)
	writeIfSet(&b, "Model", info.Model)
	writeIfSet(&b, "Serial number", info.Serial)
	writeIfSet(&b, "Revision", info.Revision)
	writeIfSet(&b, "Firmware revision", info.FirmwareRevision)
	fmt.Fprintf(&b, "Device size: %s\n", Size(info.Size))
	if info.IsBlockDevice {
		fmt.Fprintf(&b, "Block size (physical/logical): %d/%d bytes\n",
			info.PhysicalBlockSize, info.LogicalBlockSize)
	}
	writeIfSet(&b, "Subsystems", strings.Join(info.Subsystems, ", "))
	writeIfSet(&b, "USB driver", info.USBDriver)
	if info.USBVendorID != "" || info.USBProductID != "" {
		fmt.Fprintf(&b, "USB vendor/product ID: %s:%s\n", info.USBVendorID, info.USBProductID)
	}
	writeIfSet(&b, "USB manufacturer", info.USBManufacturer)
	writeIfSet(&b, "USB product", info.USBProduct)
	writeIfSet(&b, "USB serial number", info.USBSerialNumber)
	if info.USBVersion != "" || info.USBSpeed != "" {
		fmt.Fprintf(&b, "USB version (speed): %s (%s Mbps)\n", info.USBVersion, info.USBSpeed)
	}
	return b.String()
}

func writeIfSet(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}
