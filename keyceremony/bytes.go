package keyceremony

import "math/big"

// fixedWidthBytes renders v as a big-endian byte slice padded or
// truncated from the left to exactly width bytes.
func fixedWidthBytes(v *big.Int, width int) []byte {
	raw := v.Bytes()
	if len(raw) >= width {
		return raw[len(raw)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(raw):], raw)
	return out
}

func bytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
