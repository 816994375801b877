package imaging

// Package imaging computes target dimensions from the reference (1x) size, resamples
// decoded images to an exact pixel size, and decodes/encodes PNG and JPEG files.
