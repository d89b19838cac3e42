package core

import (
	"encoding/binary"
	"fmt"
	"math"
)

// 特征向量在缓存中的线格式：小端 float32 连续排布。
// 预热任务与管道的懒填充必须使用同一套编解码，解码端按长度校验。

// EncodeVector 将特征向量编码为缓存值。
func EncodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DecodeVector 从缓存值解码特征向量。
// 长度不是 4 的倍数说明缓存值损坏或写入方不一致，作为错误返回。
func DecodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid encoded length %d", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
