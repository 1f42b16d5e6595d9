package block

import (
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
	"github.com/icryptix/core/transaction"
)

// Body is the miner address plus an ordered sequence of transactions;
// order is significant because it feeds the body hash commitment.
type Body struct {
	MinerAddr    hashid.Address
	Transactions []*transaction.Transaction
}

// SerializedSize is the exact wire length of Serialize's output.
func (b Body) SerializedSize() int {
	size := hashid.AddressSize + 2
	for _, tx := range b.Transactions {
		size += tx.SerializedSize()
	}
	return size
}

// Serialize writes the miner address, a u16 transaction count, then
// each transaction in declared order.
func (b Body) Serialize() []byte {
	buf := serial.NewWriteBuffer(b.SerializedSize())
	buf.WriteBytes(b.MinerAddr[:])
	buf.WriteU16(uint16(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf.WriteBytes(tx.Serialize())
	}
	return buf.Bytes()
}

// UnserializeBody reads a Body from buf in Serialize's field order.
func UnserializeBody(buf *serial.Buffer) (Body, error) {
	var b Body

	addr, err := buf.ReadBytes(hashid.AddressSize)
	if err != nil {
		return Body{}, err
	}
	copy(b.MinerAddr[:], addr)

	count, err := buf.ReadU16()
	if err != nil {
		return Body{}, err
	}

	b.Transactions = make([]*transaction.Transaction, 0, count)
	for i := uint16(0); i < count; i++ {
		tx, err := transaction.Unserialize(buf)
		if err != nil {
			return Body{}, err
		}
		b.Transactions = append(b.Transactions, tx)
	}
	return b, nil
}

// Hash commits to the body's serialized form.
func (b Body) Hash() hashid.Hash {
	return hashid.HashBytes(b.Serialize())
}
