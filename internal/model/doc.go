package model

// Package model defines domain data structures used across the app: platforms and
// scale factors, export jobs and their per-file tasks, and the run status enum.
// Structures are plain values so the UI can bind to them directly.
