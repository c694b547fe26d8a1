// Package wire encodes notification events into a compact binary
// envelope: a protobuf wire-format body framed by a little-endian
// length and CRC32 checksum. The envelope is what the outbox stores
// and the broadcaster publishes.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"google.golang.org/protobuf/encoding/protowire"

	"meropools/domain/pool"
)

var ErrCorruptEnvelope = errors.New("corrupt event envelope")

// Envelope field numbers. One flat message covers every event kind;
// unused fields are simply absent.
//
//	1  kind          varint
//	2  order_id      string
//	3  user_id       string
//	4  batch_id      string
//	5  pool_name     string
//	6  count         varint (order count / match count)
//	7  clearing_price varint
//	8  total_volume  varint
//	9  tx_hash       string
//	10 pair          repeated string, flattened (first, second, ...)
const (
	fieldKind          = 1
	fieldOrderID       = 2
	fieldUserID        = 3
	fieldBatchID       = 4
	fieldPoolName      = 5
	fieldCount         = 6
	fieldClearingPrice = 7
	fieldTotalVolume   = 8
	fieldTxHash        = 9
	fieldPair          = 10
)

type kind uint64

const (
	kindOrderSubmitted kind = iota + 1
	kindOrderCancelled
	kindUserJoinedPool
	kindBatchProcessingStarted
	kindBatchMatched
	kindBatchReady
	kindSettlementSubmitted
)

// EncodeEvent serializes an event into a framed envelope.
func EncodeEvent(ev pool.Event) ([]byte, error) {
	var body []byte

	switch e := ev.(type) {
	case pool.OrderSubmitted:
		body = appendKind(body, kindOrderSubmitted)
		body = appendString(body, fieldOrderID, e.OrderID)
		body = appendString(body, fieldUserID, string(e.UserID))
	case pool.OrderCancelled:
		body = appendKind(body, kindOrderCancelled)
		body = appendString(body, fieldOrderID, e.OrderID)
		body = appendString(body, fieldUserID, string(e.UserID))
	case pool.UserJoinedPool:
		body = appendKind(body, kindUserJoinedPool)
		body = appendString(body, fieldUserID, string(e.UserID))
		body = appendString(body, fieldPoolName, e.PoolName)
	case pool.BatchProcessingStarted:
		body = appendKind(body, kindBatchProcessingStarted)
		body = appendString(body, fieldBatchID, e.BatchID)
		body = appendVarint(body, fieldCount, uint64(e.OrderCount))
	case pool.BatchMatched:
		body = appendKind(body, kindBatchMatched)
		body = appendString(body, fieldBatchID, e.BatchID)
		body = appendVarint(body, fieldCount, uint64(e.MatchCount))
		body = appendVarint(body, fieldClearingPrice, e.ClearingPrice)
	case pool.BatchReady:
		body = appendKind(body, kindBatchReady)
		body = appendString(body, fieldBatchID, e.BatchID)
		body = appendVarint(body, fieldClearingPrice, e.ClearingPrice)
		body = appendVarint(body, fieldTotalVolume, e.TotalVolume)
		for _, p := range e.MatchedOrders {
			body = appendString(body, fieldPair, p.First)
			body = appendString(body, fieldPair, p.Second)
		}
	case pool.SettlementSubmitted:
		body = appendKind(body, kindSettlementSubmitted)
		body = appendString(body, fieldBatchID, e.BatchID)
		body = appendString(body, fieldTxHash, e.TxHash)
	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}

	frame := make([]byte, 8, 8+len(body))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(frame[4:8], crc32.ChecksumIEEE(body))
	return append(frame, body...), nil
}

// DecodeEvent parses a framed envelope back into an event.
func DecodeEvent(data []byte) (pool.Event, error) {
	if len(data) < 8 {
		return nil, ErrCorruptEnvelope
	}
	size := binary.LittleEndian.Uint32(data[:4])
	want := binary.LittleEndian.Uint32(data[4:8])
	body := data[8:]
	if uint32(len(body)) != size || crc32.ChecksumIEEE(body) != want {
		return nil, ErrCorruptEnvelope
	}

	var (
		k             kind
		orderID       string
		userID        string
		batchID       string
		poolName      string
		count         uint64
		clearingPrice uint64
		totalVolume   uint64
		txHash        string
		pairParts     []string
	)

	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nil, ErrCorruptEnvelope
		}
		body = body[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				return nil, ErrCorruptEnvelope
			}
			body = body[n:]
			switch num {
			case fieldKind:
				k = kind(v)
			case fieldCount:
				count = v
			case fieldClearingPrice:
				clearingPrice = v
			case fieldTotalVolume:
				totalVolume = v
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(body)
			if n < 0 {
				return nil, ErrCorruptEnvelope
			}
			body = body[n:]
			switch num {
			case fieldOrderID:
				orderID = string(v)
			case fieldUserID:
				userID = string(v)
			case fieldBatchID:
				batchID = string(v)
			case fieldPoolName:
				poolName = string(v)
			case fieldTxHash:
				txHash = string(v)
			case fieldPair:
				pairParts = append(pairParts, string(v))
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, body)
			if n < 0 {
				return nil, ErrCorruptEnvelope
			}
			body = body[n:]
		}
	}

	switch k {
	case kindOrderSubmitted:
		return pool.OrderSubmitted{OrderID: orderID, UserID: pool.UserID(userID)}, nil
	case kindOrderCancelled:
		return pool.OrderCancelled{OrderID: orderID, UserID: pool.UserID(userID)}, nil
	case kindUserJoinedPool:
		return pool.UserJoinedPool{UserID: pool.UserID(userID), PoolName: poolName}, nil
	case kindBatchProcessingStarted:
		return pool.BatchProcessingStarted{BatchID: batchID, OrderCount: uint32(count)}, nil
	case kindBatchMatched:
		return pool.BatchMatched{
			BatchID:       batchID,
			MatchCount:    uint32(count),
			ClearingPrice: clearingPrice,
		}, nil
	case kindBatchReady:
		if len(pairParts)%2 != 0 {
			return nil, ErrCorruptEnvelope
		}
		pairs := make([]pool.OrderPair, 0, len(pairParts)/2)
		for i := 0; i+1 < len(pairParts); i += 2 {
			pairs = append(pairs, pool.OrderPair{First: pairParts[i], Second: pairParts[i+1]})
		}
		return pool.BatchReady{
			BatchID:       batchID,
			MatchedOrders: pairs,
			ClearingPrice: clearingPrice,
			TotalVolume:   totalVolume,
		}, nil
	case kindSettlementSubmitted:
		return pool.SettlementSubmitted{BatchID: batchID, TxHash: txHash}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %d", k)
	}
}

func appendKind(b []byte, k kind) []byte {
	return appendVarint(b, fieldKind, uint64(k))
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}
