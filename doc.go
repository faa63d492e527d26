// Package devicelink materializes a remotely-described sensor device as a
// locally queryable object graph.
//
// A remote peer publishes its device topology over NATS: an ordered catalog
// of streams, each carrying a sensor-group name, a stream type, a profile
// list, calibration data, and options. devicelink consumes that catalog once
// at proxy construction and builds:
//
//   - one sensor proxy per sensor group, in first-seen order
//   - a consumer-facing profile set per sensor, reconciled back to the
//     originating remote streams after local synthesis
//   - an extrinsics graph relating every stream's coordinate frame to every
//     other stream's, queryable per profile pair
//   - a metadata router delivering per-frame metadata to the owning sensor
//
// Package layout follows the usual split: transport concerns live in
// natsclient and topology, the domain core in stream, extrinsics, and
// device, with errors, metric, and config providing the ambient layer.
//
// The wire codec used by the remote peer is not owned here; topology only
// consumes the decoded document form.
package devicelink
