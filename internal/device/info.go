package device

// Info describes a storage device as reported by the OS. Fields that the
// platform cannot provide are left at their zero value; consumers should
// skip empty strings when presenting it.
type Info struct {
	Path              string
	Vendor            string
	Model             string
	Serial            string
	Revision          string
	FirmwareRevision  string
	Size              int64
	IsBlockDevice     bool
	LogicalBlockSize  int64
	PhysicalBlockSize int64
	Subsystems        []string

	// USB details, populated when the device hangs off a usb-storage or
	// uas driver.
	USBDriver       string
	USBVendorID     string
	USBProductID    string
	USBManufacturer string
	USBProduct      string
	USBSerialNumber string
	USBVersion      string
	USBSpeed        string
}
