package main

import "github.com/nanihealth/clinic-management/cmd"

func main() {
	cmd.Execute()
}
