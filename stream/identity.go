// Package stream defines the identity and profile types shared by the
// catalog builder, the post-link pass, and the extrinsics graph.
package stream

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/c360/devicelink/errors"
)

// Type is the closed set of stream types a remote catalog may describe.
type Type int

// Stream types
const (
	TypeDepth Type = iota
	TypeColor
	TypeInfrared
	TypeMotion
	TypeConfidence
)

// String returns the string representation of Type
func (t Type) String() string {
	switch t {
	case TypeDepth:
		return "depth"
	case TypeColor:
		return "color"
	case TypeInfrared:
		return "infrared"
	case TypeMotion:
		return "motion"
	case TypeConfidence:
		return "confidence"
	default:
		return "unknown"
	}
}

// ParseType translates a remote type tag into a Type. The tag set is closed;
// anything else is an unrecoverable catalog error.
func ParseType(tag string) (Type, error) {
	switch tag {
	case "depth":
		return TypeDepth, nil
	case "color":
		return TypeColor, nil
	case "ir":
		return TypeInfrared, nil
	case "motion":
		return TypeMotion, nil
	case "confidence":
		return TypeConfidence, nil
	default:
		return 0, fmt.Errorf("type tag %q: %w", tag, errors.ErrUnknownStreamType)
	}
}

// Identity is the durable identity of a stream within one device proxy.
// UniqueID comes from the proxy's allocator and is never reused; Index is
// parsed from the stream name.
type Identity struct {
	UniqueID uint32
	Index    int
}

// Less provides a total order over identities for use as a sorted map key
func (id Identity) Less(other Identity) bool {
	if id.UniqueID != other.UniqueID {
		return id.UniqueID < other.UniqueID
	}
	return id.Index < other.Index
}

// String returns "uid.index" for debug logs
func (id Identity) String() string {
	return fmt.Sprintf("%d.%d", id.UniqueID, id.Index)
}

// TypeIndexKey is the deduplication and re-linking key derived from a
// stream's type and parsed index. The post-synthesis profile set only
// carries type and index, not the original unique id, so this is the only
// key that can reconnect a final profile to its remote stream.
type TypeIndexKey struct {
	Type  Type
	Index int
}

// String returns "type.index" for debug logs
func (k TypeIndexKey) String() string {
	return fmt.Sprintf("%s.%d", k.Type, k.Index)
}

// IndexFromName parses the stream index from the trailing numeric suffix of
// a stream name after the last '_' delimiter. Names without a delimiter, or
// with a non-numeric suffix, yield index 0.
func IndexFromName(name string) int {
	pos := strings.LastIndex(name, "_")
	if pos < 0 {
		return 0
	}
	index, err := strconv.Atoi(name[pos+1:])
	if err != nil {
		return 0
	}
	return index
}

// IDAllocator hands out unique stream ids for one proxy's lifetime.
// Monotonically increasing, never reused. An explicit allocator instead of
// process-global state keeps id scope tied to the proxy that owns it.
type IDAllocator struct {
	next atomic.Uint32
}

// NewIDAllocator creates an allocator whose first id is 1, so the zero
// value of a profile's UniqueID always means "unset".
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh unique id
func (a *IDAllocator) Next() uint32 {
	return a.next.Add(1)
}
