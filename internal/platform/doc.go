package platform

// Package platform contains OS integration and filesystem glue: source image
// enumeration, directory helpers, default folders, folder watching, and
// revealing folders in the system file manager.
