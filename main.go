// ABOUTME: Entry point for the CRM terminal client
// ABOUTME: Delegates to the cli root command
package main

import "crmterm/cli"

func main() {
	cli.Execute()
}
