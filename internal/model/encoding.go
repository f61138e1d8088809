package model

import (
	"encoding/binary"
	"math"
)

// SerializeEmbedding packs a []float32 into a little-endian byte slice, the
// form stored in the chunks.embedding BLOB column and handed to the
// vec0 virtual table.
func SerializeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DeserializeEmbedding unpacks a little-endian byte slice produced by
// SerializeEmbedding back into a []float32.
func DeserializeEmbedding(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}
