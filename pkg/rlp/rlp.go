// Package rlp implements the recursive length prefix encoding used for
// the canonical raw-transaction byte format. Only encoding is provided;
// the engine never needs to decode RLP.
package rlp

import "math/big"

// EncodeBytes encodes a byte string.
func EncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return append(encodeLength(len(b), 0x80), b...)
}

// EncodeUint encodes an unsigned integer as a minimal big-endian byte
// string. Zero encodes as the empty string.
func EncodeUint(u uint64) []byte {
	if u == 0 {
		return []byte{0x80}
	}
	var buf [8]byte
	n := 0
	for i := 7; i >= 0; i-- {
		buf[n] = byte(u >> (8 * i))
		if n > 0 || buf[n] != 0 {
			n++
		}
	}
	return EncodeBytes(buf[:n])
}

// EncodeBigInt encodes a non-negative big integer as a minimal
// big-endian byte string. Nil and zero encode as the empty string.
func EncodeBigInt(i *big.Int) []byte {
	if i == nil || i.Sign() == 0 {
		return []byte{0x80}
	}
	return EncodeBytes(i.Bytes())
}

// EncodeList encodes a list whose items are already RLP-encoded.
func EncodeList(items ...[]byte) []byte {
	size := 0
	for _, item := range items {
		size += len(item)
	}
	out := encodeLength(size, 0xc0)
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

// encodeLength builds the length prefix for a payload of n bytes with
// the given offset (0x80 for strings, 0xc0 for lists).
func encodeLength(n int, offset byte) []byte {
	if n <= 55 {
		return []byte{offset + byte(n)}
	}
	var lenBytes [8]byte
	m := 0
	for i := 7; i >= 0; i-- {
		lenBytes[m] = byte(uint64(n) >> (8 * i))
		if m > 0 || lenBytes[m] != 0 {
			m++
		}
	}
	out := make([]byte, 0, 1+m)
	out = append(out, offset+55+byte(m))
	return append(out, lenBytes[:m]...)
}
