// Copyright 2026 The gogpu Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package wgpu renders draw lists through WebGPU.
//
// The renderer records into a caller-owned render pass: the application
// begins a pass on its own command encoder, hands the pass encoder to
// [Renderer.BeginFrame], submits it after [Renderer.Render] returns, and
// calls [Renderer.EndFrame] once the work has been handed to the queue.
// Geometry is streamed into growable vertex and index buffers that are
// reallocated to the exact requested size when a frame outgrows them.
//
// Scissor rectangles use WebGPU's top-left origin, so draw parameters
// are consumed as produced with no y flip.
package wgpu
