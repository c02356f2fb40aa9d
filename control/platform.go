// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Runtime probes relevant to lock strategy choice.

package control

import "runtime"

// RegisterPlatformProbes adds processor counts to in. Spin locks degrade
// badly when GOMAXPROCS is 1.
func RegisterPlatformProbes(in *Inspector) {
	in.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	in.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
}
