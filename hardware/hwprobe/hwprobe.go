// Package hwprobe is the hardware-info collaborator (spec §6): it
// answers "how much RAM does this process have available" once per
// resource-set materialization, using the golang.org/x/sys/unix sysinfo
// syscall wrapper.
package hwprobe

import "golang.org/x/sys/unix"

// TotalRAM returns the total installed RAM in bytes, as reported by the
// kernel's sysinfo syscall.
func TotalRAM() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}
