// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the owlet application.
//
// This package contains common helper functions used throughout the client
// for string handling, input sanitization, type conversion, and file
// operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width truncation for terminal columns
//   - SanitizeInput: normalization and control-character stripping for
//     user-submitted text before it goes on the wire
//
// Type Conversion:
//   - IntToString, Int64ToString: numeric to string conversion
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
