package main

import "hours-reconciliation/cmd/reconciler/cmd"

func main() {
	cmd.Execute()
}
