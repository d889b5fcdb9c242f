package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-drivecap/internal/device"
	"github.com/deploymenttheory/go-drivecap/internal/render"
)

var infoDrive string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show identity and geometry of a storage device",
	Long: `info probes the device through block-device ioctls and sysfs and prints
vendor, model, serial numbers, sector sizes and, for USB-attached drives,
the USB descriptor chain. Nothing is written.`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoDrive, "drive", "d", "", "storage device to inspect (required)")
	infoCmd.MarkFlagRequired("drive")
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := device.Probe(infoDrive)
	if err != nil {
		return err
	}
	fmt.Print(render.DeviceInfo(info, noColor))
	return nil
}
