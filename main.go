package main

import (
	"flag"

	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/internal/commands"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	commands.Execute()
}
