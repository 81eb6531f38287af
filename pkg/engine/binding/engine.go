// Package binding is the boundary to the external protocol engine. The engine
// does all encoding, decoding and verification on raw bytes; this package only
// converts arguments (hex keys, widened integers) and hands results back.
// Errors from the engine are returned as-is so callers can match them.
package binding

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrInvalidHex is returned when a key or identity is not valid hex.
	ErrInvalidHex = errors.New("invalid hex")
	// ErrNegativeField is returned when a numeric field cannot widen to uint64.
	ErrNegativeField = errors.New("negative numeric field")
	// ErrUnknownKind is returned for a transaction kind outside the known set.
	ErrUnknownKind = errors.New("unknown transaction kind")
)

// Kind is the transaction type understood by the engine.
type Kind uint8

const (
	KindGenerate Kind = iota
	KindMatch
	KindMove
	KindSettle
)

var kindNames = map[Kind]string{
	KindGenerate: "generate",
	KindMatch:    "match",
	KindMove:     "move",
	KindSettle:   "settle",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a transaction name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Update is a decoded, verified message from the engine. Payload stays opaque.
type Update struct {
	Kind    string
	Index   uint64
	Payload []byte
}

// Filter is a decoded subscription filter.
type Filter struct {
	Accounts [][]byte
}

// Engine is the external compiled engine. Implementations report a failed
// signature check from DecodeUpdate with an error matching ErrInvalidSignature.
type Engine interface {
	GenerateKeypair() (private, public []byte, err error)
	EncodeTransaction(private []byte, kind Kind, nonce uint64, fields []uint64) ([]byte, error)
	DecodeUpdate(identity, data []byte) (Update, error)
	EncodeQuery(index uint64) ([]byte, error)
	DecodeFilter(data []byte) (Filter, error)
}

// Keypair holds hex-encoded keys.
type Keypair struct {
	Private string
	Public  string
}

// Client marshals calls into an Engine.
type Client struct {
	engine Engine
}

// NewClient wraps engine.
func NewClient(engine Engine) *Client {
	return &Client{engine: engine}
}

// GenerateKeypair asks the engine for a new keypair.
func (c *Client) GenerateKeypair() (Keypair, error) {
	private, public, err := c.engine.GenerateKeypair()
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Private: hex.EncodeToString(private), Public: hex.EncodeToString(public)}, nil
}

// EncodeTransaction signs and encodes a transaction of kind with the given
// nonce and kind-specific fields.
func (c *Client) EncodeTransaction(privateHex string, kind Kind, nonce uint64, fields []uint64) ([]byte, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	private, err := decodeHex("private key", privateHex)
	if err != nil {
		return nil, err
	}
	return c.engine.EncodeTransaction(private, kind, nonce, fields)
}

// DecodeUpdate decodes data and verifies it against identityHex.
func (c *Client) DecodeUpdate(identityHex string, data []byte) (Update, error) {
	identity, err := decodeHex("identity", identityHex)
	if err != nil {
		return Update{}, err
	}
	return c.engine.DecodeUpdate(identity, data)
}

// EncodeQuery encodes a query for the given index.
func (c *Client) EncodeQuery(index uint64) ([]byte, error) {
	return c.engine.EncodeQuery(index)
}

// DecodeFilter decodes a subscription filter.
func (c *Client) DecodeFilter(data []byte) (Filter, error) {
	return c.engine.DecodeFilter(data)
}

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Widen converts fields to the engine's 64-bit unsigned representation.
func Widen[T Integer](fields ...T) ([]uint64, error) {
	out := make([]uint64, len(fields))
	for i, f := range fields {
		if f < 0 {
			return nil, fmt.Errorf("%w: field %d is %d", ErrNegativeField, i, int64(f))
		}
		out[i] = uint64(f)
	}
	return out, nil
}

func decodeHex(what, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidHex, what, err)
	}
	return b, nil
}
