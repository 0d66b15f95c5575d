package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/ethereum/address"
)

const erc20JSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable",
	 "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

const erc721JSON = `[
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],
	 "outputs":[]}
]`

const erc1155JSON = `[
	{"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},
	           {"name":"value","type":"uint256"},{"name":"data","type":"bytes"}],
	 "outputs":[]}
]`

var (
	erc20   = mustParse(erc20JSON)
	erc721  = mustParse(erc721JSON)
	erc1155 = mustParse(erc1155JSON)
)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("abi: invalid built-in definition: " + err.Error())
	}
	return parsed
}

func pack(contract abi.ABI, method string, args ...any) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	return data, fromEncoder(err)
}

// ERC20Transfer encodes transfer(address,uint256).
func ERC20Transfer(to address.Address, amount *uint256.Int) ([]byte, error) {
	return pack(erc20, "transfer", ConvertAddress(to), ConvertU256(amount))
}

// ERC20Approve encodes approve(address,uint256).
func ERC20Approve(spender address.Address, amount *uint256.Int) ([]byte, error) {
	return pack(erc20, "approve", ConvertAddress(spender), ConvertU256(amount))
}

// ERC721TransferFrom encodes transferFrom(address,address,uint256).
func ERC721TransferFrom(from, to address.Address, tokenID *uint256.Int) ([]byte, error) {
	return pack(erc721, "transferFrom", ConvertAddress(from), ConvertAddress(to), ConvertU256(tokenID))
}

// ERC1155SafeTransferFrom encodes safeTransferFrom(address,address,uint256,uint256,bytes).
func ERC1155SafeTransferFrom(from, to address.Address, tokenID, value *uint256.Int, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	return pack(erc1155, "safeTransferFrom",
		ConvertAddress(from), ConvertAddress(to), ConvertU256(tokenID), ConvertU256(value), data)
}
