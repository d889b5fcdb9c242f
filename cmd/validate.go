package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-drivecap/internal/config"
	"github.com/deploymenttheory/go-drivecap/internal/device"
	"github.com/deploymenttheory/go-drivecap/internal/geometry"
	"github.com/deploymenttheory/go-drivecap/internal/render"
	"github.com/deploymenttheory/go-drivecap/internal/validation"
)

var (
	validateDrive       string
	validateBlockSizeKB int
	validateNumBlocks   int
	validateReadOnly    bool
	validateMapWidth    int
	validateNoRestore   bool
	validateYes         bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run a write/verify capacity test against a drive",
	Long: `validate divides the drive into areas, snapshots one sampling block per
area, overwrites each with a fresh random payload in randomized order,
reads everything back through an uncached handle, and classifies every
block. The validated size is the contiguous prefix of the address space
whose sampled blocks all held their payload.

The sampled blocks are overwritten during the test and restored from the
in-memory snapshot afterwards. The snapshot is not persisted: a crash or
power loss mid-run loses the original content of the sampled blocks.

With --read-only nothing is written; the scan can only prove that block
addresses are readable, not that storage is real.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateDrive, "drive", "d", "", "storage device or disk image to test (required)")
	validateCmd.Flags().IntVarP(&validateBlockSizeKB, "block-size-kb", "b", 0, "sampling block size in KiB")
	validateCmd.Flags().IntVarP(&validateNumBlocks, "num-blocks", "n", 0, "number of areas/sampling blocks")
	validateCmd.Flags().BoolVarP(&validateReadOnly, "read-only", "R", false, "perform a read-only scan, write nothing")
	validateCmd.Flags().IntVarP(&validateMapWidth, "map-width", "w", 0, "validation map width in columns")
	validateCmd.Flags().BoolVarP(&validateNoRestore, "no-restore-original", "O", false, "skip snapshot capture and restoration")
	validateCmd.Flags().BoolVar(&validateYes, "yes", false, "skip the destructive-run confirmation prompt")
	validateCmd.MarkFlagRequired("drive")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("block-size-kb") {
		validateBlockSizeKB = cfg.BlockSizeKiB
	}
	if !cmd.Flags().Changed("num-blocks") {
		validateNumBlocks = cfg.NumBlocks
	}
	if !cmd.Flags().Changed("map-width") {
		validateMapWidth = cfg.MapWidth
	}
	noColor = noColor || cfg.NoColor

	if validateBlockSizeKB < 1 {
		return fmt.Errorf("block size must be at least 1 KiB, got %d", validateBlockSizeKB)
	}
	if validateNumBlocks < 1 {
		return fmt.Errorf("number of blocks must be at least 1, got %d", validateNumBlocks)
	}
	if validateMapWidth < 1 {
		return fmt.Errorf("map width must be at least 1, got %d", validateMapWidth)
	}
	blockSize := int64(validateBlockSizeKB) * 1024

	if info, err := device.Probe(validateDrive); err == nil && !quiet {
		fmt.Print(render.DeviceInfo(info, noColor))
		fmt.Println()
	}

	dev, err := device.Open(validateDrive, validateReadOnly)
	if err != nil {
		return err
	}
	defer dev.Close()

	plan, err := geometry.New(dev.Size(), validateNumBlocks, blockSize, dev.Alignment())
	if err != nil {
		return err
	}

	if !validateReadOnly && !validateYes {
		if !confirmDestructive(validateDrive, validateNoRestore) {
			return errors.New("aborted by user")
		}
	}

	orch := validation.NewOrchestrator(dev, plan, validation.Options{
		ReadOnly:    validateReadOnly,
		SkipRestore: validateNoRestore,
		Progress:    render.Progress(quiet),
	})
	report, err := orch.Run()
	if err != nil {
		if errors.Is(err, validation.ErrSnapshotIncomplete) {
			return &exitCodeError{code: 2, err: err}
		}
		return err
	}

	fmt.Println()
	fmt.Print(render.Map(report, validateMapWidth, noColor))
	fmt.Println()
	if !quiet {
		fmt.Print(render.Stats("snapshot", report.SnapshotStats))
		fmt.Print(render.Stats("write", report.WriteStats))
		fmt.Print(render.Stats("readback", report.ReadbackStats))
		fmt.Print(render.Stats("restore", report.RestoreStats))
		fmt.Println()
	}
	fmt.Print(render.Summary(report, noColor))

	if len(report.RestoreFailures) > 0 {
		return &exitCodeError{
			code: 3,
			err:  fmt.Errorf("%d of %d sampled blocks could not be restored", len(report.RestoreFailures), validateNumBlocks),
		}
	}
	return nil
}

// confirmDestructive warns that the run overwrites live data and asks the
// user to acknowledge. The snapshot lives in memory only, so this is the
// explicit data-loss acknowledgment for interrupted runs.
func confirmDestructive(path string, noRestore bool) bool {
	fmt.Printf("About to write test data to %s.\n", path)
	if noRestore {
		fmt.Println("Restoration is DISABLED: the sampled blocks will keep random data.")
	} else {
		fmt.Println("Original content is restored afterwards, but the snapshot is held in")
		fmt.Println("memory only: interrupting the run loses the sampled blocks' content.")
	}
	fmt.Print("Type 'yes' to continue: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")
}
