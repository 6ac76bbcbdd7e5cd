package commands

import (
	"fmt"

	"github.com/chainkit/ledger/foundation/ledger/database"
)

// Blocks lists the blocks in the specified range. Both bounds accept a
// chain position or the literal "latest".
func Blocks(url string, from string, to string) error {
	if from == "" {
		from = "latest"
	}
	if to == "" {
		to = "latest"
	}

	var blocks []database.Block
	if err := get(url, fmt.Sprintf("/v1/node/block/list/%s/%s", from, to), &blocks); err != nil {
		return err
	}

	for _, block := range blocks {
		fmt.Println("Hash      :", block.Hash)
		fmt.Println("PrevHash  :", block.Header.PrevBlockHash)
		fmt.Println("Nonce     :", block.Header.Nonce)
		fmt.Println("Difficulty:", block.Header.Difficulty)
		fmt.Println("Trans     :", len(block.Trans))
		fmt.Println()
	}

	return nil
}
