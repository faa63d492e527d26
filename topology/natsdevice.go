package topology

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/devicelink/errors"
	"github.com/c360/devicelink/natsclient"
)

// Subject suffixes under a device's topic root
const (
	topologySuffix = ".topology"
	metadataSuffix = ".metadata"
)

const streamNameKey = "stream-name"

// document is the decoded topology document a remote peer replies with
type document struct {
	Info             DeviceInfo         `json:"info"`
	Streams          []StreamDescriptor `json:"streams"`
	Extrinsics       []extrinsicsEntry  `json:"extrinsics,omitempty"`
	SupportsMetadata bool               `json:"supports-metadata"`
}

type extrinsicsEntry struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Transform Extrinsics `json:"transform"`
}

type discoveryRequest struct {
	ID string `json:"id"`
}

type streamPair struct {
	from string
	to   string
}

// NATSDevice is a RemoteDevice backed by a NATS connection. The topology
// document is fetched once, synchronously, via request/reply on
// <root>.topology; per-frame metadata arrives asynchronously on
// <root>.metadata.
type NATSDevice struct {
	client *natsclient.Client
	root   string
	logger *slog.Logger

	doc  document
	extr map[streamPair]Extrinsics
}

// NATSDeviceDeps holds runtime dependencies for device discovery
type NATSDeviceDeps struct {
	Client *natsclient.Client
	Root   string // device topic root, e.g. "devices.rig7.1234"
	Logger *slog.Logger
}

// Discover fetches the topology document from the remote peer and returns
// a RemoteDevice over it. The document is immutable for the device's
// lifetime; a remote topology change means discovering a new device.
func Discover(ctx context.Context, deps NATSDeviceDeps) (*NATSDevice, error) {
	if deps.Client == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("nil NATS client"),
			"NATSDevice", "Discover", "client validation")
	}
	if deps.Root == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("empty topic root"),
			"NATSDevice", "Discover", "root validation")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default().With("component", "nats-device", "root", deps.Root)
	}

	req, err := json.Marshal(discoveryRequest{ID: uuid.NewString()})
	if err != nil {
		return nil, errors.WrapInvalid(err, "NATSDevice", "Discover", "encode request")
	}

	payload, err := deps.Client.Request(ctx, deps.Root+topologySuffix, req)
	if err != nil {
		return nil, errors.WrapTransient(err, "NATSDevice", "Discover", "topology request")
	}

	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.WrapInvalid(err, "NATSDevice", "Discover", "decode topology document")
	}
	if len(doc.Streams) == 0 {
		return nil, errors.WrapInvalid(errors.ErrEmptyCatalog,
			"NATSDevice", "Discover", "topology validation")
	}

	extr := make(map[streamPair]Extrinsics, len(doc.Extrinsics))
	for _, e := range doc.Extrinsics {
		extr[streamPair{from: e.From, to: e.To}] = e.Transform
	}

	logger.Debug("discovered device topology",
		"device", doc.Info.Name,
		"serial", doc.Info.Serial,
		"streams", len(doc.Streams),
		"extrinsics", len(doc.Extrinsics))

	return &NATSDevice{
		client: deps.Client,
		root:   deps.Root,
		logger: logger,
		doc:    doc,
		extr:   extr,
	}, nil
}

// Info returns the remote device's identification block
func (d *NATSDevice) Info() DeviceInfo {
	return d.doc.Info
}

// EnumerateStreams calls fn once per stream descriptor, in document order
func (d *NATSDevice) EnumerateStreams(fn func(StreamDescriptor) error) error {
	for _, desc := range d.doc.Streams {
		if err := fn(desc); err != nil {
			return err
		}
	}
	return nil
}

// Extrinsics returns the transform for an ordered stream pair, if the
// remote exposed one
func (d *NATSDevice) Extrinsics(fromStream, toStream string) (Extrinsics, bool) {
	tf, ok := d.extr[streamPair{from: fromStream, to: toStream}]
	return tf, ok
}

// SupportsMetadata reports whether the remote delivers per-frame metadata
func (d *NATSDevice) SupportsMetadata() bool {
	return d.doc.SupportsMetadata
}

// OnMetadataAvailable subscribes to the device's metadata subject and
// forwards each payload with its stream name. Payloads without a
// stream-name key are dropped; transient topology races are expected.
func (d *NATSDevice) OnMetadataAvailable(fn MetadataHandler) error {
	return d.client.Subscribe(context.Background(), d.root+metadataSuffix,
		func(_ context.Context, data []byte) {
			var md map[string]json.RawMessage
			if err := json.Unmarshal(data, &md); err != nil {
				d.logger.Debug("dropped undecodable metadata payload", "error", err)
				return
			}
			raw, ok := md[streamNameKey]
			if !ok {
				d.logger.Debug("dropped metadata payload without stream name")
				return
			}
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				d.logger.Debug("dropped metadata payload with malformed stream name", "error", err)
				return
			}
			fn(name, data)
		})
}
