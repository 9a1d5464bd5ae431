/*
Package storage plans the layout of ZFS pools across a set of physical
disks. Some disks may be declared missing: these are stood in for with
sparse placeholder files so that pools can be created with their final
geometry, then immediately degraded by removing the placeholders, ready
for the physical disk to be inserted and resilvered later.
*/
package storage

// MissingDisk is the disk specification for a disk that is not yet
// present.
const MissingDisk = "missing"

// GPT partition type codes, as understood by sgdisk.
const (
	TypeCodeBiosBoot = "EF02"
	TypeCodeEfi      = "EF00"
	TypeCodeSwap     = "8200"
	TypeCodeZfs      = "BF01"
)

// BootMode selects the bootloader installation style.
type BootMode uint

const (
	BootModeBios = BootMode(iota)
	BootModeEfi
)

// RaidLevel is the ZFS vdev redundancy level for a pool. It satisfies the
// standard library flag.Value interface. The empty value is a plain
// stripe.
type RaidLevel string

const (
	RaidStripe = RaidLevel("")
	RaidMirror = RaidLevel("mirror")
	RaidZ1     = RaidLevel("raidz1")
	RaidZ2     = RaidLevel("raidz2")
	RaidZ3     = RaidLevel("raidz3")
)

// Disk describes one entry from the ordered disk list given on the
// command-line. A missing disk has no device and no size.
type Disk struct {
	Spec   string // As given: a device path or MissingDisk.
	Device string // Resolved stable device path. Empty if missing.
	Size   uint64 // Size in bytes. Zero if missing.
}

// Layout describes the desired partitioning and pool geometry, common to
// all disks.
type Layout struct {
	BootMode             BootMode
	BootPartitionSize    uint64 // Boot pool partition. Minimum 1 MiB.
	BootPoolName         string
	EfiPartitionSize     uint64 // Only used in EFI mode.
	MainPartitionSize    uint64 // Zero means the disk remainder.
	MainPoolName         string
	PlaceholderDirectory string
	RaidLevel            RaidLevel // For the main pool.
	SwapSize             uint64    // Zero means no swap partition.
}

// Partition describes a single GPT partition on a disk.
type Partition struct {
	Label    string
	Number   int
	Size     uint64 // Zero means the disk remainder.
	TypeCode string
}

// DiskPlan describes the partition table for one real disk and which
// partition numbers feed each pool.
type DiskPlan struct {
	Device        string
	Partitions    []Partition
	BootPartition int
	EfiPartition  int // Zero in BIOS mode.
	MainPartition int
	SwapPartition int // Zero if no swap partition.
}

// Member is one vdev member of a pool: either a real partition device or
// a placeholder file.
type Member struct {
	Path        string
	Placeholder bool
}

// Placeholder records a sparse file standing in for a missing disk in a
// pool, and how it is to be removed after pool creation.
type Placeholder struct {
	Path   string
	Pool   string
	Size   uint64
	Detach bool // Detach from pool after offlining (mirrors only).
}

// PoolPlan describes one pool: its redundancy level and ordered member
// list. Member order follows the input disk order, so that vdev slots
// are deterministic.
type PoolPlan struct {
	Name      string
	RaidLevel RaidLevel
	Members   []Member
}

// Plan is the complete storage plan.
type Plan struct {
	Disks        []DiskPlan
	BootPool     PoolPlan
	MainPool     PoolPlan
	Placeholders []Placeholder
}

// ParseDiskSpecs converts a list of disk specifications to Disks. Each
// entry is either a block device path or the literal MissingDisk string.
func ParseDiskSpecs(specs []string) ([]Disk, error) {
	return parseDiskSpecs(specs)
}

// MakePlan computes the storage plan for the given disks and layout. The
// real disks must have their Device and Size fields filled in. The order
// of the disks determines pool member order.
func MakePlan(disks []Disk, layout Layout) (*Plan, error) {
	return makePlan(disks, layout)
}

// IsMissing returns true if the disk was declared missing.
func (disk *Disk) IsMissing() bool {
	return disk.Spec == MissingDisk
}

// PartitionDevice returns the device path for the specified partition
// number, using the kernel naming convention: a "p" separator is
// inserted if the device name ends in a digit, and by-id style names get
// a "-part" separator.
func PartitionDevice(device string, number int) string {
	return partitionDevice(device, number)
}

func (level *RaidLevel) String() string {
	return string(*level)
}

func (level *RaidLevel) Set(value string) error {
	return level.set(value)
}

// MinimumMembers returns the minimum number of vdev members for the
// level.
func (level RaidLevel) MinimumMembers() int {
	switch level {
	case RaidMirror:
		return 2
	case RaidZ1:
		return 2
	case RaidZ2:
		return 3
	case RaidZ3:
		return 4
	default:
		return 1
	}
}
