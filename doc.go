// Package kmsdrm is a Direct Rendering Manager / Kernel Mode Setting
// backend for Wayland-compositor display output. It enumerates GPU
// devices, discovers their CRTC/plane/connector/encoder resource
// graph, imports client buffers as scanout framebuffers, and drives
// legacy or atomic mode-setting and page-flip commits synchronized
// with vertical blanking.
//
// The low-level ioctl surface lives in the kms subpackage; this
// package owns the policy on top of it — resource graph bookkeeping,
// commit preconditions, and the consumer-facing Output/Backend types.
package kmsdrm
