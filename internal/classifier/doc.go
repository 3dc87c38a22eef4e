// Package classifier partitions session channels by hemoglobin species and stimulus condition.
//
// Classification is pure string work over the channel descriptors: a channel
// belongs to a species when its label contains the species marker ("HRF HbO",
// "HRF HbR", "HRF HbT") under case-insensitive comparison. Species are always
// tried in the canonical [models.SpeciesOrder].
//
// Two partitioning modes exist:
//
//   - [Partition] : grouped mode, keyed by (condition, species). Each pair is
//     evaluated independently, so a label containing two markers lands in two
//     buckets. Valid data never does this; the behavior is preserved from the
//     original pipeline rather than guarded against.
//   - [PartitionBySpecies] : legacy mode, keyed by species alone. Mutually
//     exclusive, first marker match wins.
//
// Channels whose label matches no marker contribute to no bucket. The
// classifier never fails; empty buckets simply yield no export task.
package classifier
