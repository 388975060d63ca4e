package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler removes this process's half-written outputs when it
// is interrupted, then exits 1.
func SetupInterruptHandler() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "\nInterrupt received. Cleaning up...")

		CleanupUnfinishedOutputs()
		fmt.Fprintln(os.Stderr, "Exiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupUnfinishedOutputs deletes the temp files WriteAtomic is currently
// writing. Other files, including foreign *.part files, are left alone.
func CleanupUnfinishedOutputs() {
	for _, full := range PendingTemps() {
		err := os.Remove(full)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error cleaning up %s: %v\n", full, err)
		default:
			fmt.Fprintf(os.Stderr, "Removed %s\n", full)
		}
	}
}
