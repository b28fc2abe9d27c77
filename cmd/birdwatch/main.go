package main

import (
	"birdwatch-backend/cmd/birdwatch/commands"
	"birdwatch-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
