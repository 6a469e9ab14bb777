package protocol

import "math/big"

var (
	bigOne      = big.NewInt(1)
	bigMinusOne = big.NewInt(-1)
)

func newInt(v int64) *big.Int {
	return big.NewInt(v)
}
