package cache

import (
	"encoding/binary"
	"hash"

	"github.com/minio/highwayhash"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// hashKey фиксирован: ключи кэша должны совпадать между запусками.
var hashKey = []byte("hookkit-scan-cache-key-000000000")

func newHash() hash.Hash {
	h, err := highwayhash.New(hashKey)
	if err != nil {
		// ключ ровно 32 байта
		panic(err)
	}
	return h
}

func sum(h hash.Hash) Digest {
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Combine строит составной ключ: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := newHash()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	return sum(h)
}

// Strings hashes a sequence of strings; each is length-prefixed so that
// ("ab","c") and ("a","bc") differ.
func Strings(values ...string) Digest {
	h := newHash()
	var lenBuf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(v)))
		_, _ = h.Write(lenBuf[:])
		_, _ = h.Write([]byte(v))
	}
	return sum(h)
}
