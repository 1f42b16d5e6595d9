package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/block"
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
)

func TestNewInterlinkPrependsGenesis(t *testing.T) {
	genesis := hashid.HashBytes([]byte("genesis"))
	rest := hashid.HashBytes([]byte("ancestor"))

	il := block.NewInterlink(genesis, rest)
	require.Equal(t, 2, il.Len())
	require.Equal(t, genesis, il.Hashes[0])
	require.Equal(t, rest, il.Hashes[1])
}

func TestInterlinkRoundTrip(t *testing.T) {
	il := block.NewInterlink(hashid.HashBytes([]byte("g")), hashid.HashBytes([]byte("a")), hashid.HashBytes([]byte("b")))
	raw := il.Serialize()
	require.Equal(t, il.SerializedSize(), len(raw))

	got, err := block.UnserializeInterlink(serial.NewBuffer(raw))
	require.NoError(t, err)
	require.True(t, il.Equal(got))
}

func TestInterlinkRejectsEmptyLength(t *testing.T) {
	_, err := block.UnserializeInterlink(serial.NewBuffer([]byte{0x00}))
	require.Error(t, err)
}

func TestInterlinkEqualityIsElementWise(t *testing.T) {
	a := block.NewInterlink(hashid.HashBytes([]byte("g")), hashid.HashBytes([]byte("a")))
	b := block.NewInterlink(hashid.HashBytes([]byte("g")), hashid.HashBytes([]byte("a")))
	c := block.NewInterlink(hashid.HashBytes([]byte("g")), hashid.HashBytes([]byte("z")))

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
