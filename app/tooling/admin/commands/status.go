package commands

import "fmt"

type status struct {
	LatestBlockHash string `json:"latest_block_hash"`
	Blocks          int    `json:"blocks"`
	Mempool         int    `json:"mempool"`
	Beneficiary     string `json:"beneficiary"`
}

// Status reports the current status of the node.
func Status(url string) error {
	var st status
	if err := get(url, "/v1/node/status", &st); err != nil {
		return err
	}

	fmt.Println("Latest Block:", st.LatestBlockHash)
	fmt.Println("Blocks      :", st.Blocks)
	fmt.Println("Mempool     :", st.Mempool)
	fmt.Println("Beneficiary :", st.Beneficiary)

	return nil
}
