package ethereum

import (
	"github/chapool/wallet-core/internal/proto"
	"google.golang.org/protobuf/encoding/protowire"
)

// Transaction is a oneof: exactly one variant is expected to be set. When
// decoding, the last variant on the wire wins.
type Transaction struct {
	Transfer        *Transfer        `json:"transfer,omitempty"`
	Erc20Transfer   *ERC20Transfer   `json:"erc20Transfer,omitempty"`
	Erc20Approve    *ERC20Approve    `json:"erc20Approve,omitempty"`
	Erc721Transfer  *ERC721Transfer  `json:"erc721Transfer,omitempty"`
	Erc1155Transfer *ERC1155Transfer `json:"erc1155Transfer,omitempty"`
	ContractGeneric *ContractGeneric `json:"contractGeneric,omitempty"`
}

// Transfer moves native coins.
type Transfer struct {
	Amount []byte `json:"amount,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

// ERC20Transfer calls transfer(to, amount) on the token at SigningInput.ToAddress.
type ERC20Transfer struct {
	To     string `json:"to,omitempty"`
	Amount []byte `json:"amount,omitempty"`
}

// ERC20Approve calls approve(spender, amount).
type ERC20Approve struct {
	Spender string `json:"spender,omitempty"`
	Amount  []byte `json:"amount,omitempty"`
}

// ERC721Transfer calls transferFrom(from, to, tokenId).
type ERC721Transfer struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	TokenID []byte `json:"tokenId,omitempty"`
}

// ERC1155Transfer calls safeTransferFrom(from, to, id, value, data).
type ERC1155Transfer struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	TokenID []byte `json:"tokenId,omitempty"`
	Value   []byte `json:"value,omitempty"`
	Data    []byte `json:"data,omitempty"`
}

// ContractGeneric is an arbitrary call; an empty SigningInput.ToAddress deploys a contract.
type ContractGeneric struct {
	Amount []byte `json:"amount,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

var (
	_ proto.Message = (*Transaction)(nil)
	_ proto.Message = (*Transfer)(nil)
	_ proto.Message = (*ERC20Transfer)(nil)
	_ proto.Message = (*ERC20Approve)(nil)
	_ proto.Message = (*ERC721Transfer)(nil)
	_ proto.Message = (*ERC1155Transfer)(nil)
	_ proto.Message = (*ContractGeneric)(nil)
)

func (tx *Transaction) Marshal() []byte {
	var b []byte
	switch {
	case tx.Transfer != nil:
		b = proto.AppendMessage(b, 1, tx.Transfer)
	case tx.Erc20Transfer != nil:
		b = proto.AppendMessage(b, 2, tx.Erc20Transfer)
	case tx.Erc20Approve != nil:
		b = proto.AppendMessage(b, 3, tx.Erc20Approve)
	case tx.Erc721Transfer != nil:
		b = proto.AppendMessage(b, 4, tx.Erc721Transfer)
	case tx.Erc1155Transfer != nil:
		b = proto.AppendMessage(b, 5, tx.Erc1155Transfer)
	case tx.ContractGeneric != nil:
		b = proto.AppendMessage(b, 6, tx.ContractGeneric)
	}
	return b
}

func (tx *Transaction) Unmarshal(data []byte) error {
	*tx = Transaction{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			v := &Transfer{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{Transfer: v}
			return n, err
		case 2:
			v := &ERC20Transfer{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{Erc20Transfer: v}
			return n, err
		case 3:
			v := &ERC20Approve{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{Erc20Approve: v}
			return n, err
		case 4:
			v := &ERC721Transfer{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{Erc721Transfer: v}
			return n, err
		case 5:
			v := &ERC1155Transfer{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{Erc1155Transfer: v}
			return n, err
		case 6:
			v := &ContractGeneric{}
			n, err := proto.ConsumeMessage(typ, b, v)
			*tx = Transaction{ContractGeneric: v}
			return n, err
		}
		return 0, nil
	})
}

func (t *Transfer) Marshal() []byte {
	var b []byte
	b = proto.AppendBytes(b, 1, t.Amount)
	return proto.AppendBytes(b, 2, t.Data)
}

func (t *Transfer) Unmarshal(data []byte) error {
	*t = Transfer{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeBytes(typ, b, &t.Amount)
		case 2:
			return proto.ConsumeBytes(typ, b, &t.Data)
		}
		return 0, nil
	})
}

func (t *ERC20Transfer) Marshal() []byte {
	var b []byte
	b = proto.AppendString(b, 1, t.To)
	return proto.AppendBytes(b, 2, t.Amount)
}

func (t *ERC20Transfer) Unmarshal(data []byte) error {
	*t = ERC20Transfer{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeString(typ, b, &t.To)
		case 2:
			return proto.ConsumeBytes(typ, b, &t.Amount)
		}
		return 0, nil
	})
}

func (t *ERC20Approve) Marshal() []byte {
	var b []byte
	b = proto.AppendString(b, 1, t.Spender)
	return proto.AppendBytes(b, 2, t.Amount)
}

func (t *ERC20Approve) Unmarshal(data []byte) error {
	*t = ERC20Approve{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeString(typ, b, &t.Spender)
		case 2:
			return proto.ConsumeBytes(typ, b, &t.Amount)
		}
		return 0, nil
	})
}

func (t *ERC721Transfer) Marshal() []byte {
	var b []byte
	b = proto.AppendString(b, 1, t.From)
	b = proto.AppendString(b, 2, t.To)
	return proto.AppendBytes(b, 3, t.TokenID)
}

func (t *ERC721Transfer) Unmarshal(data []byte) error {
	*t = ERC721Transfer{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeString(typ, b, &t.From)
		case 2:
			return proto.ConsumeString(typ, b, &t.To)
		case 3:
			return proto.ConsumeBytes(typ, b, &t.TokenID)
		}
		return 0, nil
	})
}

func (t *ERC1155Transfer) Marshal() []byte {
	var b []byte
	b = proto.AppendString(b, 1, t.From)
	b = proto.AppendString(b, 2, t.To)
	b = proto.AppendBytes(b, 3, t.TokenID)
	b = proto.AppendBytes(b, 4, t.Value)
	return proto.AppendBytes(b, 5, t.Data)
}

func (t *ERC1155Transfer) Unmarshal(data []byte) error {
	*t = ERC1155Transfer{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeString(typ, b, &t.From)
		case 2:
			return proto.ConsumeString(typ, b, &t.To)
		case 3:
			return proto.ConsumeBytes(typ, b, &t.TokenID)
		case 4:
			return proto.ConsumeBytes(typ, b, &t.Value)
		case 5:
			return proto.ConsumeBytes(typ, b, &t.Data)
		}
		return 0, nil
	})
}

func (t *ContractGeneric) Marshal() []byte {
	var b []byte
	b = proto.AppendBytes(b, 1, t.Amount)
	return proto.AppendBytes(b, 2, t.Data)
}

func (t *ContractGeneric) Unmarshal(data []byte) error {
	*t = ContractGeneric{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeBytes(typ, b, &t.Amount)
		case 2:
			return proto.ConsumeBytes(typ, b, &t.Data)
		}
		return 0, nil
	})
}
