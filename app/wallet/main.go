// This program provides a simple command line wallet for working with
// accounts and submitting transactions to a running node.
package main

import "github.com/chainkit/ledger/app/wallet/cmd"

func main() {
	cmd.Execute()
}
