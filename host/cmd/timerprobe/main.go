// Command timerprobe collects the timer self-test reports a board prints on
// its console and summarises how late the alarms were delivered.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"coretime/host/probe"
	"coretime/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Console baud rate")
	samples = flag.Int("samples", 24, "Timer samples to collect")
	timeout = flag.Duration("timeout", 2*time.Minute, "Give up after this long")
	verbose = flag.Bool("verbose", false, "Echo every console line")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// drop whatever the board printed before we attached
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	bar := progressbar.Default(int64(*samples), "collecting")

	c := &probe.Collector{
		Want:    *samples,
		Timeout: *timeout,
		OnReport: func(r probe.Report) {
			if r.Kind == probe.KindTimer {
				bar.Add(1)
			}
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "\nskipping: %v\n", err)
		},
	}
	if *verbose {
		c.OnLine = func(line string) {
			fmt.Printf("\n< %s", strings.TrimRight(line, "\r\n"))
		}
	}

	sum, err := c.Collect(port)
	bar.Finish()
	fmt.Println()

	for _, line := range sum.Lines() {
		fmt.Println(line)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sum.Early() > 0 {
		os.Exit(2)
	}
}
