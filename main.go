package main

import "github.com/qrave1/RoomSignal/cmd"

func main() {
	cmd.Execute()
}
