// Command pzinfo prints the calling process's resource-set view: each
// rank, its RAM budget, and the node-local peers, mirroring the teacher's
// cmd/ublk-mem flag-driven entry point.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/behrlich/pzgo/config"
	"github.com/behrlich/pzgo/logx"
	"github.com/behrlich/pzgo/pzruntime"
)

func main() {
	var verbose = flag.Bool("v", false, "Verbose output (debug-level logging)")
	flag.Parse()

	opts := config.FromEnv()
	if *verbose {
		opts.LogLevel = logx.Debug
	}

	v, err := pzruntime.NewWithOptions(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pzinfo: %v\n", err)
		os.Exit(1)
	}
	defer v.Close()

	logger := v.Logger()
	logger.Info("view materialized", "size", v.Size())

	for i := 0; i < v.Size(); i++ {
		rs, err := v.At(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pzinfo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("rank %d: mine=%v hasRAM=%v", rs.Rank(), rs.IsMine(), rs.HasRAM())
		if ram, err := rs.RAM(); err == nil {
			fmt.Printf(" totalBytes=%d", ram.TotalBytes())
		}
		fmt.Println()
	}

	fmt.Printf("local peers: %v\n", v.LocalPeers())
}
