package main

import "opsnz/metasync/cmd"

func main() {
	cmd.Execute()
}
