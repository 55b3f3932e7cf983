/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propvariant

import (
	"github.com/cockroachdb/apd"
	"math/big"
	"unsafe"
)

// decimalNegative is the sign byte marking a negative DECIMAL.
const decimalNegative = 0x80

// Currency is the opaque pass-through representation of a VT_CY payload: a 64 bit integer scaled by 10000.
type Currency struct {
	Val int64
}

// Number converts the currency into an arbitrary-precision decimal.
func (c Currency) Number() *apd.Decimal {
	return apd.New(c.Val, -4)
}

func (c Currency) String() string {
	return c.Number().String()
}

// Decimal is the opaque pass-through representation of a VT_DECIMAL payload. Unlike every other kind, the
// DECIMAL fills the complete 16 byte structure: the scale and sign bytes live in the first reserved word and
// the 96 bit coefficient occupies the remaining reserved words plus the payload union.
type Decimal struct {
	Scale uint8
	Sign  uint8
	Hi32  uint32
	Lo64  uint64
}

// Number converts the decimal into an arbitrary-precision decimal.
func (d Decimal) Number() *apd.Decimal {
	coeff := new(big.Int).SetUint64(uint64(d.Hi32))
	coeff.Lsh(coeff, 64)
	coeff.Add(coeff, new(big.Int).SetUint64(d.Lo64))
	if d.Sign&decimalNegative != 0 {
		coeff.Neg(coeff)
	}
	return apd.NewWithBigInt(coeff, -int32(d.Scale))
}

func (d Decimal) String() string {
	return d.Number().String()
}

// readDecimal extracts the DECIMAL overlaying the whole variant structure.
func (pv *PropVariant) readDecimal() Decimal {
	base := unsafe.Pointer(&pv.VARIANT)
	return Decimal{
		Scale: *(*uint8)(unsafe.Add(base, 2)),
		Sign:  *(*uint8)(unsafe.Add(base, 3)),
		Hi32:  *(*uint32)(unsafe.Add(base, 4)),
		Lo64:  *(*uint64)(unsafe.Add(base, 8)),
	}
}

// writeDecimal stores the DECIMAL into the variant structure. The discriminator has to be set afterwards,
// since the first reserved word is shared between both layouts.
func (pv *PropVariant) writeDecimal(d Decimal) {
	base := unsafe.Pointer(&pv.VARIANT)
	*(*uint8)(unsafe.Add(base, 2)) = d.Scale
	*(*uint8)(unsafe.Add(base, 3)) = d.Sign
	*(*uint32)(unsafe.Add(base, 4)) = d.Hi32
	*(*uint64)(unsafe.Add(base, 8)) = d.Lo64
}
