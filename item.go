// item.go: the item codec.
//
// An item is the encoded record a slot holds: length-prefixed key,
// length-prefixed value (or a fixed 8 bytes for VAL_TYPE_INT, per the
// original C's vlen()), an absolute expire, an opaque flags blob, and
// an optional CAS token. Layout is implementation-defined but stable
// within a build - callers never see raw slot bytes, only the typed
// accessors below.
package cuckoo

import "encoding/binary"

// ValueType tags how a value is encoded: as length-prefixed bytes or
// as a fixed-width 8-byte integer.
type ValueType uint8

const (
	// TypeStr stores the value as raw bytes.
	TypeStr ValueType = iota
	// TypeInt stores the value as a fixed 8-byte integer, regardless
	// of its magnitude - the original's vlen() returns sizeof(uint64_t)
	// unconditionally for VAL_TYPE_INT and this codec does the same.
	TypeInt
)

// Value is the tagged union a caller hands to Insert/Update.
type Value struct {
	Type ValueType
	Str  []byte
	Int  int64
}

// StrValue wraps a byte slice as a string-typed Value.
func StrValue(b []byte) Value { return Value{Type: TypeStr, Str: b} }

// IntValue wraps an int64 as an int-typed Value.
func IntValue(v int64) Value { return Value{Type: TypeInt, Int: v} }

// encodedLen returns the number of bytes this value occupies inline,
// matching the original's vlen(): 8 for INT regardless of magnitude,
// len(Str) for STR.
func (v Value) encodedLen() uint32 {
	if v.Type == TypeInt {
		return 8
	}
	return uint32(len(v.Str))
}

// slot header layout, fixed regardless of CAS:
//
//	[0:2)   klen   uint16 (little-endian)
//	[2:6)   vlen   uint32
//	[6:7)   vtype  byte
//	[7:11)  expire uint32
//	[11:12) flagn  byte (length of the flags blob)
//	[12:20) cas    uint64 (only present when CAS is enabled)
//
// followed by flagn bytes of flags, then klen bytes of key, then vlen
// bytes of value (or 8 bytes for an INT value).
const (
	offKlen   = 0
	offVlen   = 2
	offVtype  = 6
	offExpire = 7
	offFlagn  = 11
	offCas    = 12
)

func casOff(casEnabled bool) int {
	if casEnabled {
		return offCas + 8
	}
	return offCas
}

func itemKlen(slot []byte) uint16  { return binary.LittleEndian.Uint16(slot[offKlen:]) }
func itemVlen(slot []byte) uint32  { return binary.LittleEndian.Uint32(slot[offVlen:]) }
func itemVtype(slot []byte) ValueType { return ValueType(slot[offVtype]) }
func itemExpire(slot []byte) uint32 { return binary.LittleEndian.Uint32(slot[offExpire:]) }
func itemFlagn(slot []byte) uint8  { return slot[offFlagn] }

func itemCas(slot []byte, casEnabled bool) uint64 {
	if !casEnabled {
		return 0
	}
	return binary.LittleEndian.Uint64(slot[offCas:])
}

func itemFlags(slot []byte, casEnabled bool) []byte {
	start := casOff(casEnabled)
	n := itemFlagn(slot)
	return slot[start : start+int(n)]
}

func itemKey(slot []byte, casEnabled bool) []byte {
	start := casOff(casEnabled) + int(itemFlagn(slot))
	n := itemKlen(slot)
	return slot[start : start+int(n)]
}

func itemVal(slot []byte, casEnabled bool) []byte {
	start := casOff(casEnabled) + int(itemFlagn(slot)) + int(itemKlen(slot))
	n := itemVlen(slot)
	return slot[start : start+int(n)]
}

// itemDataLen is the combined key+value length used for the
// item_data_curr gauge.
func itemDataLen(slot []byte) uint32 {
	return uint32(itemKlen(slot)) + itemVlen(slot)
}

// itemValid reports whether slot holds a live item: its expire field
// is nonzero and either Never or still in the future relative to now.
func itemValid(slot []byte, now uint32) bool {
	e := itemExpire(slot)
	return e != 0 && (e == Never || e > now)
}

// itemExpired reports whether slot holds an item whose expire has
// passed; such a slot is treated as free on the next touch.
func itemExpired(slot []byte, now uint32) bool {
	e := itemExpire(slot)
	return e != 0 && e != Never && e <= now
}

// itemHit reports whether slot holds a live, key-matching item -
// the predicate the original calls cuckoo_hit.
func itemHit(slot []byte, key []byte, now uint32, casEnabled bool) bool {
	return itemValid(slot, now) && itemMatched(slot, key, casEnabled)
}

// itemMatched reports whether slot's key byte-matches key. Callers
// must check itemValid first; an expired or empty slot's key bytes
// are not meaningful.
func itemMatched(slot []byte, key []byte, casEnabled bool) bool {
	k := itemKey(slot, casEnabled)
	if len(k) != len(key) {
		return false
	}
	for i := range k {
		if k[i] != key[i] {
			return false
		}
	}
	return true
}

// itemSet writes a brand-new item into slot: klen/vlen/vtype, flags,
// key then value, the expire, and (if casEnabled) a fresh CAS token.
// The caller must have already verified the encoded size fits.
func itemSet(slot []byte, key []byte, val Value, expire uint32, flags []byte, casEnabled bool, cas uint64) {
	binary.LittleEndian.PutUint16(slot[offKlen:], uint16(len(key)))
	binary.LittleEndian.PutUint32(slot[offVlen:], val.encodedLen())
	slot[offVtype] = byte(val.Type)
	binary.LittleEndian.PutUint32(slot[offExpire:], expire)
	slot[offFlagn] = uint8(len(flags))
	if casEnabled {
		binary.LittleEndian.PutUint64(slot[offCas:], cas)
	}

	start := casOff(casEnabled)
	start += copy(slot[start:], flags)
	start += copy(slot[start:], key)
	writeValue(slot[start:], val)
}

// itemUpdate rewrites val/expire (and the CAS token, if enabled) in
// place, preserving the existing key and flags.
func itemUpdate(slot []byte, val Value, expire uint32, casEnabled bool, cas uint64) {
	binary.LittleEndian.PutUint32(slot[offVlen:], val.encodedLen())
	slot[offVtype] = byte(val.Type)
	binary.LittleEndian.PutUint32(slot[offExpire:], expire)
	if casEnabled {
		binary.LittleEndian.PutUint64(slot[offCas:], cas)
	}

	start := casOff(casEnabled) + int(itemFlagn(slot)) + int(itemKlen(slot))
	writeValue(slot[start:], val)
}

// itemDelete marks slot empty. It does not zero the payload - the
// next itemSet overwrites it, and nothing reads a slot's bytes
// without first checking itemValid.
func itemDelete(slot []byte) {
	binary.LittleEndian.PutUint32(slot[offExpire:], 0)
}

func writeValue(dst []byte, val Value) {
	if val.Type == TypeInt {
		binary.LittleEndian.PutUint64(dst, uint64(val.Int))
		return
	}
	copy(dst, val.Str)
}

// decodeValue reconstructs a Value from its encoded bytes.
func decodeValue(b []byte, t ValueType) Value {
	if t == TypeInt {
		return Value{Type: TypeInt, Int: int64(binary.LittleEndian.Uint64(b))}
	}
	return Value{Type: TypeStr, Str: append([]byte(nil), b...)}
}
