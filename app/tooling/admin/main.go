// This program performs administrative tasks against a running node.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/chainkit/ledger/app/tooling/admin/commands"
)

var build = "develop"

func main() {
	if err := run(); err != nil {
		fmt.Println("ERROR:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := struct {
		conf.Version
		Args conf.Args
		Node struct {
			PrivateURL string `conf:"default:http://localhost:9080"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "admin tooling for the ledger node",
		},
	}

	const prefix = "ADMIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	return processCommands(cfg.Args, cfg.Node.PrivateURL)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, url string) error {
	switch args.Num(0) {
	case "status":
		if err := commands.Status(url); err != nil {
			return fmt.Errorf("getting status: %w", err)
		}

	case "audit":
		if err := commands.Audit(url); err != nil {
			return fmt.Errorf("auditing chain: %w", err)
		}

	case "blocks":
		if err := commands.Blocks(url, args.Num(1), args.Num(2)); err != nil {
			return fmt.Errorf("listing blocks: %w", err)
		}

	default:
		fmt.Println("status: report the node status")
		fmt.Println("audit: run the full chain audit")
		fmt.Println("blocks <from> <to>: list blocks in the range")
		return errors.New("no command provided")
	}

	return nil
}
