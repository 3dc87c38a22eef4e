// Package sessions loads fNIRS session records from disk.
//
// The export engine never reads files itself; it consumes a [models.Session]
// produced by a [Source]. [FileSource] is the concrete implementation,
// dispatching on file extension: .json records via encoding/json, .yaml/.yml
// via gopkg.in/yaml.v3. Both formats share the same shape:
//
//	name: optional tag
//	channels:
//	  - label: "HRF HbO"
//	    condition: 1
//	signal:       [[...], ...]  # timepoints x channels
//	variability:  [[...], ...]  # same shape as signal
//
// Loading performs no shape validation beyond decoding; the engine validates
// shapes before planning.
package sessions
